package scheduler

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fintrack/internal/domain/account"
	"fintrack/internal/domain/movement"
)

var auditDrift, _ = jobMeter.Float64Gauge("ledger.audit.drift", metric.WithDescription("Difference between stored balance and movement sum per account"))

// AuditJob recomputes one account's movement sum and compares it against
// the stored balance. Drift is logged and exported as a metric; the job
// never mutates the ledger.
type AuditJob struct {
	accountID       string
	movementService *movement.Service
}

// NewAuditJob creates a balance audit job for an account.
func NewAuditJob(accountID string, movementService *movement.Service) *AuditJob {
	return &AuditJob{
		accountID:       accountID,
		movementService: movementService,
	}
}

// Execute runs the audit.
func (j *AuditJob) Execute(ctx context.Context) error {
	rec, err := j.movementService.ReconcileAccount(ctx, j.accountID)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	auditDrift.Record(ctx, rec.Drift, metric.WithAttributes(attribute.String("account.id", j.accountID)))

	if !rec.InSync() {
		log.Printf("Balance audit: account %s out of sync: stored=%.2f initial=%.2f movements=%.2f drift=%.2f",
			j.accountID, rec.StoredBalance, rec.InitialBalance, rec.MovementSum, rec.Drift)
		return fmt.Errorf("account %s balance drift: %.2f", j.accountID, rec.Drift)
	}

	log.Printf("Balance audit: account %s in sync (balance=%.2f)", j.accountID, rec.StoredBalance)
	return nil
}

// AccountID returns the account this job audits.
func (j *AuditJob) AccountID() string {
	return j.accountID
}

// Description returns a human-readable description of the job.
func (j *AuditJob) Description() string {
	return fmt.Sprintf("Balance audit for account %s", j.accountID)
}

// AuditJobProvider builds one audit job per account. Wired into the
// scheduler as its job provider.
func AuditJobProvider(accountService *account.Service, movementService *movement.Service) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		accounts, err := accountService.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts for audit: %w", err)
		}

		jobs := make([]Job, 0, len(accounts))
		for _, acc := range accounts {
			jobs = append(jobs, NewAuditJob(acc.ID, movementService))
		}
		return jobs, nil
	}
}
