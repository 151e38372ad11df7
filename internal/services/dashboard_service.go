package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/database/redis"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/finance"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

const summaryCacheTTL = 5 * time.Minute

// DashboardSummary aggregates a user's money position. All figures are raw
// sums; presentation rounding is the client's job.
type DashboardSummary struct {
	UserID           string             `json:"user_id"`
	OutstandingTotal float64            `json:"outstanding_total"`
	CollectedTotal   float64            `json:"collected_total"`
	ExpenseTotal     float64            `json:"expense_total"`
	InvoiceCount     int                `json:"invoice_count"`
	OverdueCount     int                `json:"overdue_count"`
	BudgetUsage      map[string]float64 `json:"budget_usage"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// DashboardService computes the summary from the live collections and caches
// it briefly. A cold or unreachable cache degrades to a direct computation.
type DashboardService struct {
	repos *repository.Repositories
	cache *redis.Client
	now   func() time.Time
}

func NewDashboardService(repos *repository.Repositories, cache *redis.Client) *DashboardService {
	return &DashboardService{
		repos: repos,
		cache: cache,
		now:   time.Now,
	}
}

func summaryCacheKey(userID string) string {
	return fmt.Sprintf("dashboard:summary:%s", userID)
}

func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	if cached := s.fromCache(ctx, userID); cached != nil {
		return cached, nil
	}

	invoices, err := s.repos.Invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	expenses, err := s.repos.Expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	budgets, err := s.repos.Budgets.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	summary := s.summarize(userID, invoices, expenses, budgets)
	s.toCache(ctx, summary)
	return summary, nil
}

// Invalidate drops the cached summary after a write that changes it.
func (s *DashboardService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.GetClient().Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		slog.Warn("failed to invalidate dashboard cache", "user_id", userID, "error", err)
	}
}

// summarize folds the raw records into one summary. Pure aggregation; budget
// usage is spent over limit as a percentage, zero-limit budgets report zero.
func (s *DashboardService) summarize(userID string, invoices []*models.Invoice, expenses []*models.Expense, budgets []*models.Budget) *DashboardSummary {
	summary := &DashboardSummary{
		UserID:      userID,
		BudgetUsage: make(map[string]float64, len(budgets)),
		GeneratedAt: s.now().UTC(),
	}

	for _, inv := range invoices {
		summary.InvoiceCount++
		summary.CollectedTotal += inv.AmountPaid
		switch inv.Status {
		case models.InvoiceStatusPending:
			summary.OutstandingTotal += inv.BalanceDue()
		case models.InvoiceStatusOverdue:
			summary.OutstandingTotal += inv.BalanceDue()
			summary.OverdueCount++
		}
	}
	for _, exp := range expenses {
		summary.ExpenseTotal += exp.Amount
	}
	for _, b := range budgets {
		summary.BudgetUsage[b.Category] = finance.Percentage(b.Spent, b.Limit)
	}

	return summary
}

func (s *DashboardService) fromCache(ctx context.Context, userID string) *DashboardSummary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.GetClient().Get(ctx, summaryCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		slog.Warn("discarding malformed cached summary", "user_id", userID, "error", err)
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.GetClient().Set(ctx, summaryCacheKey(summary.UserID), raw, summaryCacheTTL).Err(); err != nil {
		slog.Warn("failed to cache dashboard summary", "user_id", summary.UserID, "error", err)
	}
}
