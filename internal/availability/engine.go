package availability

import (
	"time"
)

const DefaultSlotDuration = 60

// Config хранит явные настройки движка вместо глобального состояния:
// часовой пояс календаря и длительность слота для окон-переопределений.
type Config struct {
	Location            *time.Location
	DefaultSlotDuration int
}

// Engine генерирует слоты записи из недельных шаблонов, исключений по датам
// и существующих записей. Движок не обращается к хранилищу и не имеет
// состояния: одинаковые входы всегда дают одинаковый результат.
type Engine struct {
	loc      *time.Location
	duration int
}

func NewEngine(cfg Config) *Engine {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	duration := cfg.DefaultSlotDuration
	if duration <= 0 {
		duration = DefaultSlotDuration
	}

	return &Engine{loc: loc, duration: duration}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// DaySlots генерирует слоты на один календарный день.
//
// Приоритет правил: исключение с IsAvailable=false закрывает день целиком;
// исключение с окном StartTime–EndTime заменяет все недельные шаблоны;
// иначе действуют все активные шаблоны нужного дня недели в порядке входа.
// Совпадение исключения с датой определяется по календарной дате поля Date
// как она записана (компонент времени и зона игнорируются).
// Слоты разных шаблонов не объединяются и не дедуплицируются, даже если
// окна шаблонов пересекаются.
func (e *Engine) DaySlots(date time.Time, templates []WeeklyTemplate, exceptions []DateException, bookings []Booking) ([]Slot, error) {
	year, month, day := date.In(e.loc).Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, e.loc)
	dayKey := midnight.Format("2006-01-02")

	var exc *DateException
	for i := range exceptions {
		if exceptions[i].Date.Format("2006-01-02") == dayKey {
			exc = &exceptions[i]
			break
		}
	}

	if exc != nil && !exc.IsAvailable {
		return []Slot{}, nil
	}

	rules, err := e.resolveRules(int(midnight.Weekday()), templates, exc)
	if err != nil {
		return nil, err
	}

	slots := []Slot{}
	for _, rule := range rules {
		startMin, endMin := rule.window()
		duration := rule.slotDuration()
		if duration <= 0 {
			duration = e.duration
		}

		for cursor := startMin; cursor+duration <= endMin; cursor += duration + rule.bufferAfter() {
			slotStart := time.Date(year, month, day, 0, cursor, 0, 0, e.loc)
			slotEnd := time.Date(year, month, day, 0, cursor+duration, 0, 0, e.loc)

			slots = append(slots, Slot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Available: !overlapsAny(slotStart, slotEnd, bookings),
			})
		}
	}

	return slots, nil
}

func (e *Engine) resolveRules(weekday int, templates []WeeklyTemplate, exc *DateException) ([]effectiveRule, error) {
	if exc != nil && exc.StartTime != nil && exc.EndTime != nil {
		rule, err := newOverrideRule(*exc, e.duration)
		if err != nil {
			return nil, err
		}
		return []effectiveRule{rule}, nil
	}

	var rules []effectiveRule
	for _, tpl := range templates {
		if !tpl.IsActive || tpl.DayOfWeek != weekday {
			continue
		}

		rule, err := newWeeklyRule(tpl)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// RangeSlots генерирует слоты на каждый день диапазона [from, toExclusive).
// В результате присутствует ключ для каждого дня диапазона, даже если
// список слотов пуст.
func (e *Engine) RangeSlots(from, toExclusive time.Time, templates []WeeklyTemplate, exceptions []DateException, bookings []Booking) (map[string][]Slot, error) {
	year, month, day := from.In(e.loc).Date()
	cursor := time.Date(year, month, day, 0, 0, 0, 0, e.loc)

	year, month, day = toExclusive.In(e.loc).Date()
	end := time.Date(year, month, day, 0, 0, 0, 0, e.loc)

	result := make(map[string][]Slot)
	for ; cursor.Before(end); cursor = cursor.AddDate(0, 0, 1) {
		slots, err := e.DaySlots(cursor, templates, exceptions, bookings)
		if err != nil {
			return nil, err
		}
		result[cursor.Format("2006-01-02")] = slots
	}

	return result, nil
}

// HasOverlap сообщает, пересекается ли интервал-кандидат хотя бы с одной
// неотмененной записью. Интервалы полуоткрытые: общая граница не считается
// пересечением. Сам по себе предикат не защищает от гонки двух одновременных
// бронирований, поэтому вызывающая сторона обязана сериализовать проверку и вставку
// (транзакционная блокировка или ограничение уникальности в хранилище).
func HasOverlap(candidateStart, candidateEnd time.Time, bookings []Booking) (bool, error) {
	if !candidateStart.Before(candidateEnd) {
		return false, ErrInvalidInterval
	}

	return overlapsAny(candidateStart, candidateEnd, bookings), nil
}

func overlapsAny(start, end time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true
		}
	}
	return false
}
