// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for staking events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key,
	tag integer not null,
	staker blob(32),
	sender blob(20),
	amount blob(8) not null,
	time integer not null
);

create index if not exists eventTimeIndex on event(time);
create index if not exists eventStakerIndex on event(staker);
create index if not exists eventTagIndex on event(tag);
`

// create a table for outbound token transfers
const transferTableSchema = `
create table if not exists transfer (
	seq integer primary key,
	tokenID blob,
	amount blob(8) not null,
	recipient blob(20) not null,
	staker blob(32),
	time integer not null
);

create index if not exists transferTimeIndex on transfer(time);
create index if not exists transferStakerIndex on transfer(staker);
create index if not exists transferRecipientIndex on transfer(recipient);
`
