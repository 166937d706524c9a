package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели, ключ расписания провайдера
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays все дни недели, начиная с понедельника
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var fromTimeWeekday = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf день недели календарной даты
func WeekdayOf(date time.Time) Weekday {
	return fromTimeWeekday[date.Weekday()]
}

// ParseWeekday разбирает день недели без учета регистра ("monday", "MONDAY")
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
	}
	return d, nil
}

func (d Weekday) Valid() bool {
	return d.ISONumber() != 0
}

// ISONumber номер дня по ISO 8601: понедельник = 1, воскресенье = 7 (как EXTRACT(ISODOW) в PostgreSQL)
func (d Weekday) ISONumber() int {
	for i, w := range Weekdays {
		if w == d {
			return i + 1
		}
	}
	return 0
}

func (d Weekday) String() string {
	return string(d)
}
