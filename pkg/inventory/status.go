package inventory

import (
	"Pantry-Tracker/domain"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusNormal       Status = "normal"
	StatusLowStock     Status = "low-stock"
	StatusExpiringSoon Status = "expiring-soon"
	StatusExpired      Status = "expired"
)

// ExpiringSoonDays is the last day (inclusive) of the expiring-soon window.
const ExpiringSoonDays = 3

var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError reports a date field that could not be read as a calendar date.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

type Classification struct {
	Status          Status `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	IsExpired       bool   `json:"is_expired"`
	IsExpiringSoon  bool   `json:"is_expiring_soon"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate accepts a plain calendar date or a full timestamp.
func ParseDate(field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, &InvalidDateError{Field: field, Value: value}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidDateError{Field: field, Value: value}
}

// CalendarDay drops the time of day, keeping the date as written in t's own offset.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole number of calendar days from now to t.
// It works on Unix seconds since time.Duration saturates past about 292 years.
func DaysBetween(now, t time.Time) int {
	return int((CalendarDay(t).Unix() - CalendarDay(now).Unix()) / secondsPerDay)
}

// Classify derives the lifecycle status of item relative to now.
func Classify(item domain.FoodItem, now time.Time) (Classification, error) {
	expiry, err := ParseDate("expiry_date", item.ExpiryDate)
	if err != nil {
		return Classification{}, err
	}
	if strings.TrimSpace(item.PurchaseDate) != "" {
		if _, err := ParseDate("purchase_date", item.PurchaseDate); err != nil {
			return Classification{}, err
		}
	}

	days := DaysBetween(now, expiry)
	c := Classification{
		DaysUntilExpiry: days,
		IsExpired:       days < 0,
		IsExpiringSoon:  days >= 0 && days <= ExpiringSoonDays,
	}

	switch {
	case c.IsExpired:
		c.Status = StatusExpired
	case c.IsExpiringSoon:
		c.Status = StatusExpiringSoon
	case IsLowStock(item):
		c.Status = StatusLowStock
	default:
		c.Status = StatusNormal
	}
	return c, nil
}

// IsLowStock only applies to items that opted in via LowStockAlert.
func IsLowStock(item domain.FoodItem) bool {
	return item.LowStockAlert && item.Quantity.LessThanOrEqual(item.LowStockThreshold)
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNormal, StatusLowStock, StatusExpiringSoon, StatusExpired:
		return Status(s), true
	}
	return "", false
}
