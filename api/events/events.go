// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/api/utils"
	"github.com/gona-network/gonastake/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

// Filter query events with option
func (e *Events) filter(ctx context.Context, filter *EventFilter) ([]*FilteredEvent, error) {
	criteria := make([]*logdb.EventCriteria, len(filter.CriteriaSet))
	for i, c := range filter.CriteriaSet {
		criteria[i] = &logdb.EventCriteria{
			Tag:    c.Tag,
			Staker: c.Staker,
			Sender: c.Sender,
		}
	}
	events, err := e.db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: criteria,
		Range:       filter.Range.Convert(),
		Options: &logdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		},
		Order: filter.Order,
	})
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return fes, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := ValidateQuery(filter.Range, filter.Options, filter.Order, e.limit); err != nil {
		return err
	}
	for i, criterion := range filter.CriteriaSet {
		if criterion == nil {
			return utils.BadRequest(fmt.Errorf("criteriaSet[%d]: null not allowed", i))
		}
	}
	if filter.Options == nil {
		// one more than the limit, to tell whether the result was cut
		filter.Options = &Options{Limit: e.limit + 1}
	}

	fes, err := e.filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	if len(fes) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	return utils.WriteJSON(w, fes)
}

// ValidateQuery checks the parts shared by event and transfer filters.
func ValidateQuery(rng *Range, options *Options, order logdb.Order, limit uint64) error {
	if options != nil && options.Limit > limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", limit))
	}
	if options != nil && options.Offset > math.MaxInt64 {
		return utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if rng != nil {
		if rng.From != nil && *rng.From > math.MaxInt64 || rng.To != nil && *rng.To > math.MaxInt64 {
			return utils.BadRequest(fmt.Errorf("range exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
		}
		if rng.From != nil && rng.To != nil && *rng.From > *rng.To {
			return utils.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
		}
	}
	if order != "" && order != logdb.ASC && order != logdb.DESC {
		return utils.BadRequest(fmt.Errorf("order: unknown value %q", order))
	}
	return nil
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /logs/event").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
