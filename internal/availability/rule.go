package availability

import (
	"fmt"
)

// effectiveRule хранит правило, по которому цикл генерации нарезает слоты:
// либо недельный шаблон, либо окно-переопределение из исключения.
type effectiveRule interface {
	window() (startMin, endMin int)
	slotDuration() int
	bufferAfter() int
}

type weeklyRule struct {
	startMin int
	endMin   int
	duration int
	buffer   int
}

func (r weeklyRule) window() (int, int) { return r.startMin, r.endMin }
func (r weeklyRule) slotDuration() int  { return r.duration }
func (r weeklyRule) bufferAfter() int   { return r.buffer }

// overrideRule строит одиночное окно из DateException: длительность слота
// берется из настроек движка, буфер нулевой, вместимость 1.
type overrideRule struct {
	startMin int
	endMin   int
	duration int
}

func (r overrideRule) window() (int, int) { return r.startMin, r.endMin }
func (r overrideRule) slotDuration() int  { return r.duration }
func (r overrideRule) bufferAfter() int   { return 0 }

func newWeeklyRule(tpl WeeklyTemplate) (weeklyRule, error) {
	startMin, err := ParseClock(tpl.StartTime)
	if err != nil {
		return weeklyRule{}, fmt.Errorf("шаблон для дня %d: %w", tpl.DayOfWeek, err)
	}

	endMin, err := ParseClock(tpl.EndTime)
	if err != nil {
		return weeklyRule{}, fmt.Errorf("шаблон для дня %d: %w", tpl.DayOfWeek, err)
	}

	return weeklyRule{
		startMin: startMin,
		endMin:   endMin,
		duration: tpl.SlotDuration,
		buffer:   tpl.BufferAfter,
	}, nil
}

func newOverrideRule(exc DateException, duration int) (overrideRule, error) {
	startMin, err := ParseClock(*exc.StartTime)
	if err != nil {
		return overrideRule{}, fmt.Errorf("исключение на %s: %w", exc.Date.Format("2006-01-02"), err)
	}

	endMin, err := ParseClock(*exc.EndTime)
	if err != nil {
		return overrideRule{}, fmt.Errorf("исключение на %s: %w", exc.Date.Format("2006-01-02"), err)
	}

	return overrideRule{startMin: startMin, endMin: endMin, duration: duration}, nil
}
