package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TimeSlots упорядоченный набор меток слотов
// Порядок - порядок из запроса провайдера; в хранилище лежит строка через запятую
type TimeSlots []string

// Validate проверяет, что набор можно сохранить и прочитать обратно без потерь
func (s TimeSlots) Validate() error {
	if len(s) > MaxSlotsPerDay {
		return fmt.Errorf("%w: at most %d slots per day", ErrInvalidTimeSlots, MaxSlotsPerDay)
	}

	seen := make(map[string]struct{}, len(s))
	for _, label := range s {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: empty slot label", ErrInvalidTimeSlots)
		}
		if label != strings.TrimSpace(label) {
			return fmt.Errorf("%w: slot %q has surrounding spaces", ErrInvalidTimeSlots, label)
		}
		if strings.Contains(label, TimeSlotsDelimiter) {
			return fmt.Errorf("%w: slot %q contains %q", ErrInvalidTimeSlots, label, TimeSlotsDelimiter)
		}
		if len(label) > MaxTimeSlotLength {
			return fmt.Errorf("%w: slot %q is longer than %d", ErrInvalidTimeSlots, label, MaxTimeSlotLength)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidTimeSlots, label)
		}
		seen[label] = struct{}{}
	}

	return nil
}

// Encode строка для хранения
func (s TimeSlots) Encode() string {
	return strings.Join(s, TimeSlotsDelimiter)
}

// DecodeTimeSlots разбирает строку из хранилища; пустая строка - пустой набор
func DecodeTimeSlots(raw string) TimeSlots {
	if raw == "" {
		return TimeSlots{}
	}
	return TimeSlots(strings.Split(raw, TimeSlotsDelimiter))
}

func (s TimeSlots) Contains(label string) bool {
	for _, l := range s {
		if l == label {
			return true
		}
	}
	return false
}

// Remove возвращает копию без первого вхождения label и признак, что оно было
func (s TimeSlots) Remove(label string) (TimeSlots, bool) {
	for i, l := range s {
		if l == label {
			out := make(TimeSlots, 0, len(s)-1)
			out = append(out, s[:i]...)
			out = append(out, s[i+1:]...)
			return out, true
		}
	}
	return s, false
}

// Value implements driver.Valuer
func (s TimeSlots) Value() (driver.Value, error) {
	return s.Encode(), nil
}

// Scan implements sql.Scanner
func (s *TimeSlots) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = TimeSlots{}
	case string:
		*s = DecodeTimeSlots(v)
	case []byte:
		*s = DecodeTimeSlots(string(v))
	default:
		return fmt.Errorf("TimeSlots.Scan: unsupported type %T", src)
	}
	return nil
}
