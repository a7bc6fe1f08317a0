package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the llm_events table.
type eventRepo struct {
	drv *entsql.Driver
}

var llmEventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(LlmEventsTable.Name).
		Columns(llmEventColumns[1:]...).
		Values(
			time.Now().UnixMilli(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) PruneLLMEvents(ctx context.Context, before time.Time) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(LlmEventsTable.Name).
		Where(entsql.LT("timestamp", before.UnixMilli())).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("prune LLM events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune LLM events: %w", err)
	}
	return int(n), nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(LlmEventsTable.Name)

	sel := b.Select(t.Columns(llmEventColumns...)...).From(t)

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ(t.C("purpose"), opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc(t.C("id")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	return r.scanEvents(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(LlmEventsTable.Name)
	query, args := b.Select(t.Columns(llmEventColumns...)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	events, err := r.scanEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "model")
}

func (r *eventRepo) usageBy(ctx context.Context, column string) ([]LLMUsage, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(LlmEventsTable.Name)
	query, args := b.Select(
		t.C(column),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("input_tokens")), "input_tokens"),
		entsql.As(entsql.Sum(t.C("output_tokens")), "output_tokens"),
		entsql.As(entsql.Avg(t.C("latency_ms")), "avg_latency"),
	).
		From(t).
		GroupBy(t.C(column)).
		OrderBy(entsql.Desc("calls")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			key         string
			u           LLMUsage
			avgLatency  float64
			inTok, outT int64
		)
		if err := rows.Scan(&key, &u.Calls, &inTok, &outT, &avgLatency); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.InputTokens = int(inTok)
		u.OutputTokens = int(outT)
		u.AvgLatencyMs = int64(avgLatency)
		if column == "purpose" {
			u.Purpose = key
		} else {
			u.Model = key
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) scanEvents(ctx context.Context, query string, args []any) ([]LLMEvent, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var (
			e  LLMEvent
			ts int64
		)
		if err := rows.Scan(
			&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
