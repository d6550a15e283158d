package adaptation

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/readiness"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRuleNotFound = errors.New("adaptation rule not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListSystemDefaults(ctx context.Context) (_ []Rule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.rules.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT readiness_level, volume_modifier, intensity_modifier, rest_modifier, message
			FROM adaptation_rule
			WHERE is_system_default
			ORDER BY readiness_level;`,
	)
	if err != nil {
		return nil, err
	}

	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Rule, error) {
		var (
			rule  Rule
			level string
		)
		err := row.Scan(&level, &rule.Modifiers.Volume, &rule.Modifiers.Intensity, &rule.Modifiers.Rest, &rule.Message)
		rule.Level = readiness.Level(level)
		return rule, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rules: %w", err)
	}

	span.SetAttributes(attribute.Int("rules.count", len(rules)))
	return rules, nil
}

// UpdateSystemDefault replaces the modifiers and message of the system default rule for rule.Level.
func (r *Repo) UpdateSystemDefault(ctx context.Context, rule Rule) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.rules.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("readiness.level", string(rule.Level)))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE adaptation_rule
			SET volume_modifier = $1, intensity_modifier = $2, rest_modifier = $3, message = $4, updated_at = now()
			WHERE readiness_level = $5 AND is_system_default;`,
		rule.Modifiers.Volume, rule.Modifiers.Intensity, rule.Modifiers.Rest, rule.Message, string(rule.Level),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRuleNotFound
	}

	return nil
}
