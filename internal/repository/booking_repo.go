package repository

import (
	"context"
	"fmt"
	"time"

	"homebooking/internal/domain"

	"gorm.io/gorm"
)

// BookingRowRepository is an append-only SQL table with the same columns as
// the booking sheet. It stands in for the spreadsheet in local development.
type BookingRowRepository struct {
	db *gorm.DB
}

func NewBookingRowRepository(db *gorm.DB) *BookingRowRepository {
	return &BookingRowRepository{db: db}
}

type bookingRowModel struct {
	ID                     int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp              string    `gorm:"column:timestamp"`
	FullName               string    `gorm:"column:full_name"`
	PhoneNumber            string    `gorm:"column:phone_number"`
	EmailAddress           string    `gorm:"column:email_address"`
	PropertyType           string    `gorm:"column:property_type"`
	ServiceAddress         string    `gorm:"column:service_address;type:text"`
	ServiceType            string    `gorm:"column:service_type"`
	SpecificService        string    `gorm:"column:specific_service"`
	UrgencyLevel           string    `gorm:"column:urgency_level"`
	BudgetRange            string    `gorm:"column:budget_range"`
	ProblemDescription     string    `gorm:"column:problem_description;type:text"`
	PreferredDate          string    `gorm:"column:preferred_date"`
	PreferredTime          string    `gorm:"column:preferred_time"`
	AlternativeDate        string    `gorm:"column:alternative_date"`
	AlternativeTime        string    `gorm:"column:alternative_time"`
	AccessInstructions     string    `gorm:"column:access_instructions;type:text"`
	SpecialRequests        string    `gorm:"column:special_requests;type:text"`
	PreferredContactMethod string    `gorm:"column:preferred_contact_method"`
	BestTimeToCall         string    `gorm:"column:best_time_to_call"`
	CreatedAt              time.Time `gorm:"column:created_at"`
}

func (bookingRowModel) TableName() string { return "booking_rows" }

func toBookingRowModel(row []string) bookingRowModel {
	return bookingRowModel{
		Timestamp:              row[0],
		FullName:               row[1],
		PhoneNumber:            row[2],
		EmailAddress:           row[3],
		PropertyType:           row[4],
		ServiceAddress:         row[5],
		ServiceType:            row[6],
		SpecificService:        row[7],
		UrgencyLevel:           row[8],
		BudgetRange:            row[9],
		ProblemDescription:     row[10],
		PreferredDate:          row[11],
		PreferredTime:          row[12],
		AlternativeDate:        row[13],
		AlternativeTime:        row[14],
		AccessInstructions:     row[15],
		SpecialRequests:        row[16],
		PreferredContactMethod: row[17],
		BestTimeToCall:         row[18],
	}
}

func (m bookingRowModel) row() []string {
	return domain.BookingRecord{
		Timestamp:              m.Timestamp,
		FullName:               m.FullName,
		PhoneNumber:            m.PhoneNumber,
		EmailAddress:           m.EmailAddress,
		PropertyType:           m.PropertyType,
		ServiceAddress:         m.ServiceAddress,
		ServiceType:            m.ServiceType,
		SpecificService:        m.SpecificService,
		UrgencyLevel:           m.UrgencyLevel,
		BudgetRange:            m.BudgetRange,
		ProblemDescription:     m.ProblemDescription,
		PreferredDate:          m.PreferredDate,
		PreferredTime:          m.PreferredTime,
		AlternativeDate:        m.AlternativeDate,
		AlternativeTime:        m.AlternativeTime,
		AccessInstructions:     m.AccessInstructions,
		SpecialRequests:        m.SpecialRequests,
		PreferredContactMethod: m.PreferredContactMethod,
		BestTimeToCall:         m.BestTimeToCall,
	}.Row()
}

// EnsureHeaders creates the table. The header row itself is implied by the
// schema and prepended by List.
func (r *BookingRowRepository) EnsureHeaders(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&bookingRowModel{})
}

func (r *BookingRowRepository) Append(ctx context.Context, row []string) (int64, error) {
	if len(row) != domain.ColumnCount {
		return 0, fmt.Errorf("row has %d columns, want %d", len(row), domain.ColumnCount)
	}
	m := toBookingRowModel(row)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// List returns the header row followed by every booking in insertion order.
func (r *BookingRowRepository) List(ctx context.Context) ([][]string, error) {
	var models []bookingRowModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(models)+1)
	out = append(out, append([]string(nil), domain.SheetHeaders...))
	for _, m := range models {
		out = append(out, m.row())
	}
	return out, nil
}
