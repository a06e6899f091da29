// Package sheets appends budget rows to a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fjacquet/bank-budget/internal/config"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/writer"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Values are entered as if typed by a user so that dates and amounts are
// parsed by the spreadsheet locale.
const valueInputOption = "USER_ENTERED"

// appender writes rows below the last row of a range.
type appender interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error
}

// Publisher appends the income and expense sections to their ranges.
type Publisher struct {
	api    appender
	cfg    config.SheetsConfig
	logger logging.Logger
}

// NewPublisher creates a Publisher authenticated with the service account
// credentials file from cfg.
func NewPublisher(ctx context.Context, cfg config.SheetsConfig, logger logging.Logger) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newPublisher(&serviceAppender{svc: svc}, cfg, logger), nil
}

func newPublisher(api appender, cfg config.SheetsConfig, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Publisher{api: api, cfg: cfg, logger: logger}
}

// Publish appends both sections. Empty sections are not sent.
func (p *Publisher) Publish(ctx context.Context, out writer.OrderedOutput) error {
	if p.api == nil {
		return errors.New("sheets service not initialized")
	}

	targets := []struct {
		kind models.TransactionKind
		rng  string
	}{
		{models.KindIncome, p.cfg.IncomeRange},
		{models.KindExpense, p.cfg.ExpenseRange},
	}

	for _, t := range targets {
		rows := toValues(out.Rows(t.kind))
		if len(rows) == 0 {
			continue
		}
		if err := p.api.Append(ctx, p.cfg.SpreadsheetID, t.rng, rows); err != nil {
			return fmt.Errorf("append %s rows to %s: %w", t.kind, t.rng, err)
		}
		p.logger.Info("Published rows to Google Sheets",
			logging.Field{Key: logging.FieldSection, Value: t.kind.String()},
			logging.Field{Key: logging.FieldCount, Value: len(rows)},
			logging.Field{Key: "range", Value: t.rng},
		)
	}
	return nil
}

func toValues(rows []writer.Row) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		fields := r.Fields()
		line := make([]interface{}, len(fields))
		for i, f := range fields {
			line[i] = f
		}
		values = append(values, line)
	}
	return values
}

type serviceAppender struct {
	svc *gsheet.Service
}

func (a *serviceAppender) Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error {
	_, err := a.svc.Spreadsheets.Values.
		Append(spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
