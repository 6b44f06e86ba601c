package booking

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"homebooking/internal/domain"
	"homebooking/internal/pkg/utils"
)

type Service struct {
	store RowStore
	feed  EventPublisher
	loc   *time.Location
	log   *zap.Logger

	policy *bluemonday.Policy
	now    func() time.Time
}

// NewService wires the booking flow. feed and log may be nil; a nil loc
// means Asia/Manila.
func NewService(store RowStore, feed EventPublisher, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc, _ = utils.LoadLocation("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		feed:   feed,
		loc:    loc,
		log:    log,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// CreateBooking formats req into a sheet row and appends it. The required
// fields are checked after markup is stripped, so a value that sanitizes to
// nothing counts as missing.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	req = s.sanitize(req)
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	rec := s.buildRecord(req)

	// the store writes the header row itself on first append
	updated, err := s.store.Append(ctx, rec.Row())
	if err != nil {
		return nil, fmt.Errorf("%w: append row: %w", ErrStore, err)
	}

	s.log.Info("booking stored",
		zap.String("service_type", rec.ServiceType),
		zap.String("specific_service", rec.SpecificService),
		zap.String("preferred_date", rec.PreferredDate),
		zap.Int64("updated_rows", updated),
	)

	if s.feed != nil {
		s.feed.BookingCreated(rec)
	}

	return &CreateBookingResult{Success: true, UpdatedRows: updated}, nil
}

// ListBookings returns every stored row, header first.
func (s *Service) ListBookings(ctx context.Context) ([][]string, error) {
	if err := s.store.EnsureHeaders(ctx); err != nil {
		return nil, fmt.Errorf("%w: ensure headers: %w", ErrStore, err)
	}
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list rows: %w", ErrStore, err)
	}
	return rows, nil
}

// sanitize returns req with markup stripped from every text field. Dates
// are left for buildRecord.
func (s *Service) sanitize(req CreateBookingRequest) CreateBookingRequest {
	for _, p := range []*string{
		&req.FullName, &req.PhoneNumber, &req.EmailAddress, &req.PropertyType,
		&req.ServiceAddress, &req.ServiceType, &req.SpecificService,
		&req.UrgencyLevel, &req.BudgetRange, &req.ProblemDescription,
		&req.PreferredTime, &req.AlternativeTime, &req.AccessInstructions,
		&req.SpecialRequests, &req.PreferredContactMethod, &req.BestTimeToCall,
	} {
		*p = s.clean(*p)
	}
	return req
}

// buildRecord expects a sanitized request.
func (s *Service) buildRecord(req CreateBookingRequest) domain.BookingRecord {
	received := s.now()
	return domain.BookingRecord{
		Timestamp:              utils.FormatTimestampPH(received, s.loc),
		FullName:               req.FullName,
		PhoneNumber:            req.PhoneNumber,
		EmailAddress:           req.EmailAddress,
		PropertyType:           req.PropertyType,
		ServiceAddress:         req.ServiceAddress,
		ServiceType:            req.ServiceType,
		SpecificService:        req.SpecificService,
		UrgencyLevel:           req.UrgencyLevel,
		BudgetRange:            req.BudgetRange,
		ProblemDescription:     req.ProblemDescription,
		PreferredDate:          s.date(req.PreferredDate),
		PreferredTime:          req.PreferredTime,
		AlternativeDate:        s.date(req.AlternativeDate),
		AlternativeTime:        req.AlternativeTime,
		AccessInstructions:     req.AccessInstructions,
		SpecialRequests:        req.SpecialRequests,
		PreferredContactMethod: req.PreferredContactMethod,
		BestTimeToCall:         req.BestTimeToCall,
		ReceivedAt:             received,
	}
}

// clean strips markup; entities produced by the sanitizer are decoded so
// the sheet shows what the user typed.
func (s *Service) clean(v string) string {
	if v == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *Service) date(v *string) string {
	if v == nil {
		return ""
	}
	formatted, ok := utils.FormatDatePH(*v, s.loc)
	if !ok && formatted != "" {
		s.log.Warn("unparseable booking date kept as sent", zap.String("value", formatted))
	}
	return s.clean(formatted)
}
