// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/gona"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache

	mu     sync.Mutex
	nextOp uint32
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if path == ":memory:" {
		// each connection would see its own database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	var maxSeq sql.NullInt64
	if err := db.QueryRow("SELECT MAX(seq) FROM (SELECT seq FROM event UNION ALL SELECT seq FROM transfer)").Scan(&maxSeq); err != nil {
		return nil, errors.Wrap(err, "load newest sequence")
	}
	var nextOp uint32
	if maxSeq.Valid {
		nextOp = sequence(maxSeq.Int64).Op() + 1
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
		nextOp:        nextOp,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the bundled sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, tag, staker, sender, amount, time FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	stmt, args = appendRange(stmt, args, filter.Range)

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Tag != nil {
			args = append(args, *criteria.Tag)
			stmt += " AND tag = ?"
		}
		if criteria.Staker != nil {
			args = append(args, criteria.Staker.Bytes())
			stmt += " AND staker = ?"
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ?"
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	stmt += orderBy(filter.Order)
	stmt, args = appendOptions(stmt, args, filter.Options)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const query = "SELECT seq, tokenID, amount, recipient, staker, time FROM transfer"
	if filter == nil {
		return db.queryTransfers(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleTransferFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	stmt, args = appendRange(stmt, args, filter.Range)

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Staker != nil {
			args = append(args, criteria.Staker.Bytes())
			stmt += " AND staker = ?"
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ?"
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	stmt += orderBy(filter.Order)
	stmt, args = appendOptions(stmt, args, filter.Options)
	return db.queryTransfers(ctx, stmt, args...)
}

func appendRange(stmt string, args []any, r *Range) (string, []any) {
	if r == nil {
		return stmt, args
	}
	args = append(args, int64(r.From))
	stmt += " AND time >= ?"
	if r.To >= r.From {
		args = append(args, int64(r.To))
		stmt += " AND time <= ?"
	}
	return stmt, args
}

func orderBy(order Order) string {
	if order == DESC {
		return " ORDER BY seq DESC"
	}
	return " ORDER BY seq ASC"
}

func appendOptions(stmt string, args []any, options *Options) (string, []any) {
	if options == nil {
		return stmt, args
	}
	return stmt + " LIMIT ?, ?", append(args, int64(options.Offset), int64(options.Limit))
}

func (db *LogDB) query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error) {
	prepared, err := db.stmtCache.Prepare(stmt)
	if err != nil {
		return nil, err
	}
	return prepared.QueryContext(ctx, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq    int64
			tag    uint8
			staker []byte
			sender []byte
			amount []byte
			time   int64
		)
		if err := rows.Scan(&seq, &tag, &staker, &sender, &amount, &time); err != nil {
			return nil, err
		}
		event := &Event{
			Op:     sequence(seq).Op(),
			Index:  sequence(seq).Index(),
			Tag:    tag,
			Staker: publicKeyValue(staker),
			Amount: decodeAmount(amount),
			Time:   uint64(time),
		}
		if len(sender) > 0 {
			addr := gona.BytesToAddress(sender)
			event.Sender = &addr
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       int64
			tokenID   []byte
			amount    []byte
			recipient []byte
			staker    []byte
			time      int64
		)
		if err := rows.Scan(&seq, &tokenID, &amount, &recipient, &staker, &time); err != nil {
			return nil, err
		}
		trans := &Transfer{
			Op:        sequence(seq).Op(),
			Index:     sequence(seq).Index(),
			Amount:    decodeAmount(amount),
			Recipient: gona.BytesToAddress(recipient),
			Staker:    publicKeyValue(staker),
			Time:      uint64(time),
		}
		if len(tokenID) > 0 {
			trans.TokenID = gona.TokenID(tokenID)
		}
		transfers = append(transfers, trans)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// sqlite integers are signed, so amounts are kept as big-endian blobs.
func encodeAmount(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func decodeAmount(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func publicKeyValue(b []byte) *gona.PublicKey {
	if len(b) != gona.PublicKeyLength {
		return nil
	}
	var k gona.PublicKey
	copy(k[:], b)
	return &k
}

func publicKeyBytes(k *gona.PublicKey) []byte {
	if k == nil {
		return nil
	}
	return k.Bytes()
}

func addressBytes(a *gona.Address) []byte {
	if a == nil {
		return nil
	}
	return a.Bytes()
}

// NewWriter creates a log writer. Logs written are assigned to the next
// operation number when committed.
func (db *LogDB) NewWriter() *Writer {
	return &Writer{db: db}
}

// Writer buffers the logs of one committed operation.
type Writer struct {
	db        *LogDB
	events    []*Event
	transfers []*Transfer
}

// Write buffers logs.
func (w *Writer) Write(events []*Event, transfers []*Transfer) *Writer {
	w.events = append(w.events, events...)
	w.transfers = append(w.transfers, transfers...)
	return w
}

// Len returns the number of buffered logs.
func (w *Writer) Len() int {
	return len(w.events) + len(w.transfers)
}

// Rollback drops buffered logs.
func (w *Writer) Rollback() {
	w.events = nil
	w.transfers = nil
}

// Commit stores buffered logs as one operation.
func (w *Writer) Commit() (err error) {
	if w.Len() == 0 {
		return nil
	}
	w.db.mu.Lock()
	defer w.db.mu.Unlock()

	op := w.db.nextOp
	if err := w.execInTx(func(tx *sql.Tx) error {
		for i, event := range w.events {
			event.Op, event.Index = op, uint32(i)
			if _, err := tx.Exec("INSERT INTO event(seq, tag, staker, sender, amount, time) VALUES (?, ?, ?, ?, ?, ?)",
				int64(newSequence(op, uint32(i))),
				event.Tag,
				publicKeyBytes(event.Staker),
				addressBytes(event.Sender),
				encodeAmount(event.Amount),
				int64(event.Time),
			); err != nil {
				return err
			}
		}
		for i, transfer := range w.transfers {
			transfer.Op, transfer.Index = op, uint32(i)
			var tokenID []byte
			if len(transfer.TokenID) > 0 {
				tokenID = transfer.TokenID
			}
			if _, err := tx.Exec("INSERT INTO transfer(seq, tokenID, amount, recipient, staker, time) VALUES (?, ?, ?, ?, ?, ?)",
				int64(newSequence(op, uint32(i))),
				tokenID,
				encodeAmount(transfer.Amount),
				transfer.Recipient.Bytes(),
				publicKeyBytes(transfer.Staker),
				int64(transfer.Time),
			); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "commit logs")
	}

	w.db.nextOp++
	w.Rollback()
	return nil
}

func (w *Writer) execInTx(proc func(*sql.Tx) error) error {
	tx, err := w.db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
