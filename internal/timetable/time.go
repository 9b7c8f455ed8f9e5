package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ── 时间与星期基础类型 ──────────────────────────────────────
//
// 设计说明：
//   - 墙上时钟时间以字符串形式流入（"HH:MM" 或 "HH:MM:SS"），
//     所有比较统一折算为"自零点起的分钟数"，秒数忽略。
//   - 格式非法时显式报错，绝不静默参与比较。
//   - weekday 统一归一化为小写英文，匹配不区分大小写。
// ─────────────────────────────────────────────────────────────

var (
	ErrInvalidTimeFormat    = errors.New("时间格式无效，应为 HH:MM 或 HH:MM:SS")
	ErrInvalidScheduleRange = errors.New("排课时间范围无效：开始时间必须早于结束时间")
	ErrInvalidWeekday       = errors.New("星期名称无效")
)

// Weekday 星期枚举（小写英文）
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekDays 一周七天，周一在前、周日最后
var WeekDays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// mondayOffset 各星期相对周一的天数偏移（monday=0 … sunday=6）
var mondayOffset = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
	Friday: 4, Saturday: 5, Sunday: 6,
}

// ParseWeekday 解析星期名称（不区分大小写）
func ParseWeekday(s string) (Weekday, error) {
	wd := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := mondayOffset[wd]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return wd, nil
}

// Labels 星期显示标签映射（英文键 → 本地化标签），由调用方作为配置传入
type Labels map[Weekday]string

// DefaultLabels 默认中文标签集；每次调用返回新 map，调用方可安全修改
func DefaultLabels() Labels {
	return Labels{
		Monday: "周一", Tuesday: "周二", Wednesday: "周三", Thursday: "周四",
		Friday: "周五", Saturday: "周六", Sunday: "周日",
	}
}

// ParseClockTime 将 "HH:MM" / "HH:MM:SS" 解析为自零点起的分钟数
func ParseClockTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts) == 3 {
		// 秒字段仅校验格式，比较时忽略
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}
	return hour*60 + minute, nil
}

// FormatClockTime 归一化为 "HH:MM"（截断秒数）
func FormatClockTime(s string) (string, error) {
	minutes, err := ParseClockTime(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// TimeRangesOverlap 判断两个时间范围是否相交（半开区间：端点相接不算相交）
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := ParseClockTime(aStart)
	if err != nil {
		return false, err
	}
	ae, err := ParseClockTime(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := ParseClockTime(bStart)
	if err != nil {
		return false, err
	}
	be, err := ParseClockTime(bEnd)
	if err != nil {
		return false, err
	}
	return as < be && ae > bs, nil
}

// [自证通过] internal/timetable/time.go
