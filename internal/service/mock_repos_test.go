package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("stu-%d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, keyword string, _, _ int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		if keyword != "" && !strings.Contains(s.Name, keyword) &&
			!strings.Contains(s.Phone, keyword) && !strings.Contains(s.Email, keyword) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, int64(len(result)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.students, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = fmt.Sprintf("tch-%d", len(m.teachers)+1)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, keyword string, _, _ int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if !t.IsActive {
			continue
		}
		if keyword != "" && !strings.Contains(t.Name, keyword) &&
			!strings.Contains(t.Specialization, keyword) {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, int64(len(result)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staff map[string]*model.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[string]*model.Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	if staff.StaffID == "" {
		staff.StaffID = fmt.Sprintf("stf-%d", len(m.staff)+1)
	}
	m.staff[staff.StaffID] = staff
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	if s, ok := m.staff[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) List(_ context.Context, keyword string, _, _ int) ([]model.Staff, int64, error) {
	var result []model.Staff
	for _, s := range m.staff {
		if !s.IsActive {
			continue
		}
		if keyword != "" && !strings.Contains(s.Name, keyword) &&
			!strings.Contains(s.Position, keyword) {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockStaffRepo) Update(_ context.Context, staff *model.Staff) error {
	m.staff[staff.StaffID] = staff
	return nil
}

func (m *mockStaffRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.staff, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("crs-%d", len(m.courses)+1)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, keyword, level string, _, _ int) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		if !c.IsActive {
			continue
		}
		if keyword != "" && !strings.Contains(c.Name, keyword) {
			continue
		}
		if level != "" && c.Level != level {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms  map[string]*model.Classroom
	enrollments *mockEnrollmentRepo // CountActiveEnrollments 共享数据
}

func newMockClassroomRepo(enrollments *mockEnrollmentRepo) *mockClassroomRepo {
	return &mockClassroomRepo{
		classrooms:  make(map[string]*model.Classroom),
		enrollments: enrollments,
	}
}

func (m *mockClassroomRepo) Create(_ context.Context, classroom *model.Classroom) error {
	if classroom.ClassroomID == "" {
		classroom.ClassroomID = fmt.Sprintf("cls-%d", len(m.classrooms)+1)
	}
	m.classrooms[classroom.ClassroomID] = classroom
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if c, ok := m.classrooms[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context, courseID, teacherID, status string, _, _ int) ([]model.Classroom, int64, error) {
	var result []model.Classroom
	for _, c := range m.classrooms {
		if courseID != "" && c.CourseID != courseID {
			continue
		}
		if teacherID != "" && (c.TeacherID == nil || *c.TeacherID != teacherID) {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockClassroomRepo) Update(_ context.Context, classroom *model.Classroom) error {
	m.classrooms[classroom.ClassroomID] = classroom
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.classrooms, id)
	return nil
}

func (m *mockClassroomRepo) CountActiveEnrollments(_ context.Context, classroomID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments.records {
		if e.ClassroomID == classroomID && e.Status == "active" {
			count++
		}
	}
	return count, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	records map[string]*model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{records: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		enrollment.EnrollmentID = fmt.Sprintf("enr-%d", len(m.records)+1)
	}
	m.records[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByStudentAndClassroom(_ context.Context, studentID, classroomID string) (*model.Enrollment, error) {
	for _, e := range m.records {
		if e.StudentID == studentID && e.ClassroomID == classroomID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByClassroom(_ context.Context, classroomID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.records {
		if e.ClassroomID == classroomID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EnrollmentID < result[j].EnrollmentID })
	return result, nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.records {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	m.records[enrollment.EnrollmentID] = enrollment
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = fmt.Sprintf("sch-%d", len(m.schedules)+1)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByClassroom(_ context.Context, classroomID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.ClassroomID == classroomID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.Classroom != nil && s.Classroom.TeacherID != nil && *s.Classroom.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) ListAllActive(_ context.Context) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.Classroom != nil && s.Classroom.Status == "finished" {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.schedules, id)
	return nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams map[string]*model.Exam
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{exams: make(map[string]*model.Exam)}
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	if exam.ExamID == "" {
		exam.ExamID = fmt.Sprintf("exm-%d", len(m.exams)+1)
	}
	m.exams[exam.ExamID] = exam
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) ListByClassroom(_ context.Context, classroomID string) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		if e.ClassroomID == classroomID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExamRepo) Update(_ context.Context, exam *model.Exam) error {
	m.exams[exam.ExamID] = exam
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.exams, id)
	return nil
}

// ── Mock ScoreRepository ──

type mockScoreRepo struct {
	scores map[string]*model.Score // key: examID:studentID
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{scores: make(map[string]*model.Score)}
}

func (m *mockScoreRepo) Upsert(_ context.Context, score *model.Score) error {
	key := score.ExamID + ":" + score.StudentID
	if score.ScoreID == "" {
		score.ScoreID = "scr-" + key
	}
	m.scores[key] = score
	return nil
}

func (m *mockScoreRepo) BatchUpsert(ctx context.Context, scores []model.Score) error {
	for i := range scores {
		sc := scores[i]
		if err := m.Upsert(ctx, &sc); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockScoreRepo) ListByExam(_ context.Context, examID string) ([]model.Score, error) {
	var result []model.Score
	for _, s := range m.scores {
		if s.ExamID == examID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (m *mockScoreRepo) ListByStudent(_ context.Context, studentID string) ([]model.Score, error) {
	var result []model.Score
	for _, s := range m.scores {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScoreRepo) Delete(_ context.Context, id string) error {
	for key, s := range m.scores {
		if s.ScoreID == id {
			delete(m.scores, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance // key: scheduleID:studentID:date
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func (m *mockAttendanceRepo) BatchUpsert(_ context.Context, records []model.Attendance) error {
	for i := range records {
		r := records[i]
		key := r.ScheduleID + ":" + r.StudentID + ":" + r.Date.Format("2006-01-02")
		if r.AttendanceID == "" {
			r.AttendanceID = "att-" + key
		}
		m.records[key] = &r
	}
	return nil
}

func (m *mockAttendanceRepo) ListBySchedule(_ context.Context, scheduleID string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.ScheduleID == scheduleID && r.Date.Equal(date) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string, from, to time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID != studentID {
			continue
		}
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── 组装完整 Mock Repository ──

func newMockRepository() *repository.Repository {
	enrollments := newMockEnrollmentRepo()
	return &repository.Repository{
		User:       newMockUserRepo(),
		Student:    newMockStudentRepo(),
		Teacher:    newMockTeacherRepo(),
		Staff:      newMockStaffRepo(),
		Course:     newMockCourseRepo(),
		Classroom:  newMockClassroomRepo(enrollments),
		Enrollment: enrollments,
		Schedule:   newMockScheduleRepo(),
		Exam:       newMockExamRepo(),
		Score:      newMockScoreRepo(),
		Attendance: newMockAttendanceRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
