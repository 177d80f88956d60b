// Package service implements the link lifecycle and resolution engines.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/storage"
)

// Lifecycle is the only writer of link records. It orchestrates
// create/update/delete and owns the change-log append semantics: every
// mutating operation leaves exactly one log entry listing the fields it
// touched, written in the same store update as the fields themselves.
type Lifecycle struct {
	store  Store
	alloc  *IDAllocator
	logger *zap.Logger
	now    func() time.Time
}

func NewLifecycle(store Store, alloc *IDAllocator, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		store:  store,
		alloc:  alloc,
		logger: logger,
		now:    time.Now,
	}
}

// Handle runs one lifecycle request end to end. The response always carries
// either the affected identifier or an error string, never both, plus the
// capacity units every store call consumed along the way.
func (l *Lifecycle) Handle(ctx context.Context, req models.LifecycleRequest) models.LifecycleResponse {
	var resp models.LifecycleResponse
	err := l.dispatch(ctx, req, &resp)
	if err == nil {
		return resp
	}

	if clientError(err) {
		resp.ID = ""
		resp.Error = err.Error()
		return resp
	}

	// The partial response carries the new identifier when writes had
	// already begun, so an operator can locate partially written records.
	l.logger.Error("lifecycle operation failed",
		zap.Any("request", req),
		zap.Any("response", resp),
		zap.Error(err))
	resp.ID = ""
	resp.Error = "Internal server error"
	return resp
}

func (l *Lifecycle) dispatch(ctx context.Context, req models.LifecycleRequest, resp *models.LifecycleResponse) error {
	environmentID, ok := models.AsString(req.EnvironmentID)
	if !ok {
		return &ValidationError{Message: "Invalid environmentid"}
	}
	tenantID, ok := models.AsString(req.TenantID)
	if !ok {
		return &ValidationError{Message: "Invalid tenantid"}
	}
	action, ok := models.AsString(req.Action)
	if !ok {
		return &ValidationError{Message: "Invalid action"}
	}

	tenantKey := storage.TenantKey(environmentID, tenantID)
	switch action {
	case "create":
		return l.create(ctx, req, tenantKey, resp)
	case "update":
		return l.update(ctx, req, tenantKey, resp)
	case "delete":
		return l.delete(ctx, req, tenantKey, resp)
	default:
		return &ValidationError{Message: "Unrecognized action"}
	}
}

func (l *Lifecycle) create(ctx context.Context, req models.LifecycleRequest, tenantKey string, resp *models.LifecycleResponse) error {
	destination, ok := models.AsString(req.Destination)
	if !ok && models.Present(req.Destination) {
		return &ValidationError{Message: "Invalid destination"}
	}
	if destination == "" {
		return &ValidationError{Message: "Missing destination"}
	}

	var description *string
	if models.Present(req.Description) {
		d, ok := models.AsString(req.Description)
		if !ok {
			return &ValidationError{Message: "Invalid description"}
		}
		description = &d
	}

	if v := ValidateDates(req.StartDate, req.EndDate); !v.Valid {
		return &ValidationError{Message: "Invalid field(s): " + strings.Join(v.ErrorFields, ",")}
	}

	now := l.now()
	record := &models.LinkRecord{
		Destination: destination,
		Description: description,
		CreatedDate: now.UnixMilli(),
		Aliases:     make(map[string]models.AliasRule),
		Logs:        make(map[string][]string),
	}
	if ms, ok := ParseDate(req.StartDate); ok {
		record.StartDate = &ms
	}
	if ms, ok := ParseDate(req.EndDate); ok {
		record.EndDate = &ms
	}

	for _, domain := range sortedKeys(req.Aliases) {
		rule, _, err := decodeAliasRule(domain, req.Aliases[domain])
		if err != nil {
			return err
		}
		record.Aliases[domain] = rule
	}

	id, cost, err := l.alloc.Allocate(ctx)
	resp.ConsumedCapacityUnits += cost
	if err != nil {
		return err
	}

	// The identifier goes on the response before any write happens; if a
	// later write fails, the error log carries it for cleanup.
	resp.ID = id
	record.ID = id
	record.Logs[millisKey(now)] = createLogLines(record)

	cost, err = l.store.PutLink(ctx, record)
	resp.ConsumedCapacityUnits += cost
	if err != nil {
		return err
	}

	cost, err = l.store.AddTenantLink(ctx, tenantKey, id)
	resp.ConsumedCapacityUnits += cost
	return err
}

func (l *Lifecycle) update(ctx context.Context, req models.LifecycleRequest, tenantKey string, resp *models.LifecycleResponse) error {
	if req.ID == "" {
		return &ValidationError{Message: "Missing id"}
	}
	if models.Present(req.Destination) {
		if _, ok := models.AsString(req.Destination); !ok {
			return &ValidationError{Message: "Invalid destination"}
		}
	}
	if models.Present(req.Description) && !models.IsFalse(req.Description) {
		if _, ok := models.AsString(req.Description); !ok {
			return &ValidationError{Message: "Invalid description"}
		}
	}
	if v := ValidateDates(req.StartDate, req.EndDate); !v.Valid {
		return &ValidationError{Message: "Invalid field(s): " + strings.Join(v.ErrorFields, ",")}
	}

	record, err := l.fetchOwned(ctx, tenantKey, req.ID, resp)
	if err != nil {
		return err
	}
	if record.Deleted() {
		return &ConflictError{Message: "Deleted link cannot be updated"}
	}
	resp.ID = req.ID

	now := l.now()
	patch := storage.LinkPatch{Aliases: make(map[string]storage.Patch[models.AliasRule])}
	var logLines []string

	if destination, ok := models.AsString(req.Destination); ok {
		patch.Destination = storage.Set(destination)
		logLines = append(logLines, "Updated destination to "+destination)
	}

	if models.Present(req.Description) {
		if models.IsFalse(req.Description) {
			patch.Description = storage.Remove[string]()
			logLines = append(logLines, "Deleted description")
		} else {
			description, _ := models.AsString(req.Description)
			patch.Description = storage.Set(description)
			logLines = append(logLines, "Updated description to "+description)
		}
	}

	if models.Present(req.StartDate) {
		if models.IsFalse(req.StartDate) {
			patch.StartDate = storage.Remove[int64]()
			logLines = append(logLines, "Deleted startdate")
		} else {
			ms, _ := ParseDate(req.StartDate)
			patch.StartDate = storage.Set(ms)
			logLines = append(logLines, "Updated startdate to "+models.ScalarString(req.StartDate))
		}
	}

	if models.Present(req.EndDate) {
		if models.IsFalse(req.EndDate) {
			patch.EndDate = storage.Remove[int64]()
			logLines = append(logLines, "Deleted enddate")
		} else {
			ms, _ := ParseDate(req.EndDate)
			patch.EndDate = storage.Set(ms)
			logLines = append(logLines, "Updated enddate to "+models.ScalarString(req.EndDate))
		}
	}

	for _, domain := range sortedKeys(req.Aliases) {
		raw := req.Aliases[domain]
		if models.IsFalse(raw) {
			patch.Aliases[domain] = storage.Remove[models.AliasRule]()
			logLines = append(logLines, "Deleted alias for domain "+domain)
			continue
		}
		rule, window, err := decodeAliasRule(domain, raw)
		if err != nil {
			return err
		}
		patch.Aliases[domain] = storage.Set(rule)
		logLines = append(logLines, fmt.Sprintf("Updated alias for domain %s to startdate: %s; enddate: %s",
			domain, scalarOrNA(window.StartDate), scalarOrNA(window.EndDate)))
	}

	patch.LogKey = millisKey(now)
	patch.LogLines = logLines

	cost, err := l.store.UpdateLink(ctx, req.ID, patch)
	resp.ConsumedCapacityUnits += cost
	if errors.Is(err, storage.ErrNotFound) {
		// The record vanished between the ownership check and the write.
		return &NotFoundError{Message: "Link not found"}
	}
	return err
}

func (l *Lifecycle) delete(ctx context.Context, req models.LifecycleRequest, tenantKey string, resp *models.LifecycleResponse) error {
	if req.ID == "" {
		return &ValidationError{Message: "Missing id"}
	}

	record, err := l.fetchOwned(ctx, tenantKey, req.ID, resp)
	if err != nil {
		return err
	}
	if record.Deleted() {
		return &ConflictError{Message: "Link already deleted"}
	}
	resp.ID = req.ID

	now := l.now()
	ms := now.UnixMilli()
	patch := storage.LinkPatch{
		DeletedDate: &ms,
		LogKey:      millisKey(now),
		LogLines:    []string{"Deleted short link"},
	}

	cost, err := l.store.UpdateLink(ctx, req.ID, patch)
	resp.ConsumedCapacityUnits += cost
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Message: "Link not found"}
	}
	return err
}

// fetchOwned performs the ownership check against the tenant index and then
// loads the record itself, billing both lookups.
func (l *Lifecycle) fetchOwned(ctx context.Context, tenantKey, id string, resp *models.LifecycleResponse) (*models.LinkRecord, error) {
	owned, cost, err := l.store.HasTenantLink(ctx, tenantKey, id)
	resp.ConsumedCapacityUnits += cost
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &NotFoundError{Message: "Link not found"}
	}

	record, cost, err := l.store.GetLink(ctx, id)
	resp.ConsumedCapacityUnits += cost
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &NotFoundError{Message: "Link not found"}
	}
	return record, nil
}

// rawWindow keeps the alias window fields as supplied, for validation
// attribution and for log lines that echo the caller's values.
type rawWindow struct {
	StartDate json.RawMessage `json:"startdate,omitempty"`
	EndDate   json.RawMessage `json:"enddate,omitempty"`
}

func decodeAliasRule(domain string, raw json.RawMessage) (models.AliasRule, rawWindow, error) {
	var window rawWindow
	if !models.Present(raw) || json.Unmarshal(raw, &window) != nil {
		return models.AliasRule{}, rawWindow{}, &ValidationError{Message: fmt.Sprintf("Invalid alias %q", domain)}
	}
	if v := ValidateDates(window.StartDate, window.EndDate); !v.Valid {
		return models.AliasRule{}, rawWindow{}, &ValidationError{
			Message: fmt.Sprintf("Invalid field(s) for domain %q: %s", domain, strings.Join(v.ErrorFields, ",")),
		}
	}

	var rule models.AliasRule
	if ms, ok := ParseDate(window.StartDate); ok {
		rule.StartDate = &ms
	}
	if ms, ok := ParseDate(window.EndDate); ok {
		rule.EndDate = &ms
	}
	return rule, window, nil
}

func createLogLines(record *models.LinkRecord) []string {
	aliases, _ := json.Marshal(record.Aliases)
	return []string{
		"Created short link",
		"Destination: " + record.Destination,
		"Description: " + orNA(record.Description),
		"Start date: " + isoOrNA(record.StartDate),
		"End date: " + isoOrNA(record.EndDate),
		"Aliases: " + string(aliases),
	}
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func isoOrNA(ms *int64) string {
	if ms == nil {
		return "N/A"
	}
	return time.UnixMilli(*ms).UTC().Format(time.RFC3339)
}

func scalarOrNA(raw json.RawMessage) string {
	if !models.Present(raw) {
		return "N/A"
	}
	return models.ScalarString(raw)
}

func millisKey(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
