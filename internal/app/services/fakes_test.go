package services

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
)

// In-memory collaborators for service tests.

type fakeCourseStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*models.Course

	createErr error
	// loseRace makes the status update fail as if another moderator won,
	// even when GetByID reported the course Pending.
	loseRace bool

	crossRefCalls int
	crossRefErr   error
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uuid.UUID]*models.Course)}
}

func (f *fakeCourseStore) add(course *models.Course) *models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseStore) Create(ctx context.Context, course *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	course.ID = uuid.New()
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) GetAll(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Course
	for _, course := range f.courses {
		if status == "" || course.Status == status {
			copied := *course
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeCourseStore) UpdateStatusFromPending(ctx context.Context, id uuid.UUID, to models.CourseStatus) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok || course.Status != models.StatusPending || f.loseRace {
		return nil, repositories.ErrCourseNotPending
	}
	course.Status = to
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) SetCrossReference(ctx context.Context, id uuid.UUID, success bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crossRefCalls++
	if f.crossRefErr != nil {
		return f.crossRefErr
	}
	course, ok := f.courses[id]
	if !ok {
		return repositories.ErrCourseNotFound
	}
	course.CrossReferenceSuccess = &success
	return nil
}

type fakeSectionStore struct {
	byCourse map[uuid.UUID][]models.CourseSection
	bulkErr  error
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{byCourse: make(map[uuid.UUID][]models.CourseSection)}
}

func (f *fakeSectionStore) CreateBulk(ctx context.Context, courseID uuid.UUID, sections []models.CourseSection) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.byCourse[courseID] = append(f.byCourse[courseID], sections...)
	return nil
}

func (f *fakeSectionStore) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseSection, error) {
	return f.byCourse[courseID], nil
}

type fakeFacilitatorStore struct {
	byCourse map[uuid.UUID][]models.CourseFacilitator
	bulkErr  error
}

func newFakeFacilitatorStore() *fakeFacilitatorStore {
	return &fakeFacilitatorStore{byCourse: make(map[uuid.UUID][]models.CourseFacilitator)}
}

func (f *fakeFacilitatorStore) CreateBulk(ctx context.Context, courseID uuid.UUID, facilitators []models.CourseFacilitator) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.byCourse[courseID] = append(f.byCourse[courseID], facilitators...)
	return nil
}

func (f *fakeFacilitatorStore) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseFacilitator, error) {
	return f.byCourse[courseID], nil
}

type fakeRosterStore struct {
	records []models.ApprovedCourse
	err     error
	calls   int
}

func (f *fakeRosterStore) FindByInstructorEmail(ctx context.Context, email, semester string) ([]models.ApprovedCourse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var matched []models.ApprovedCourse
	for _, record := range f.records {
		if record.InstructorOfRecordEmail == email && record.Semester == semester {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

type fakeSemesterStore struct {
	current string
	all     []string
	err     error
}

func (f *fakeSemesterStore) GetCurrent(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.current == "" {
		return "", repositories.ErrNoSemesters
	}
	return f.current, nil
}

func (f *fakeSemesterStore) GetAll(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	// failOn makes the upload of one object path fail.
	failOn     string
	deleted    []string
	deleteErr  error
	uploadsErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(ctx context.Context, objectPath, contentType string, content io.Reader) (string, error) {
	if f.uploadsErr != nil {
		return "", f.uploadsErr
	}
	if f.failOn != "" && objectPath == f.failOn {
		return "", io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	f.objects[objectPath] = data
	return f.PublicURL(objectPath), nil
}

func (f *fakeObjectStore) Download(ctx context.Context, objectPath string) ([]byte, error) {
	data, ok := f.objects[objectPath]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, objectPath)
	return nil
}

func (f *fakeObjectStore) PublicURL(objectPath string) string {
	return "https://files.test/decal-submissions/" + objectPath
}

type sentMail struct {
	recipients []string
	title      string
	feedback   string
}

type fakeNotifier struct {
	approvals  []sentMail
	rejections []sentMail
	err        error
}

func (f *fakeNotifier) SendApprovalEmail(recipients []string, courseTitle string) error {
	f.approvals = append(f.approvals, sentMail{recipients: recipients, title: courseTitle})
	return f.err
}

func (f *fakeNotifier) SendRejectionEmail(recipients []string, courseTitle, feedback string) error {
	f.rejections = append(f.rejections, sentMail{recipients: recipients, title: courseTitle, feedback: feedback})
	return f.err
}

func pdfAttachment(name string) *Attachment {
	content := []byte("%PDF-1.4 test content")
	return &Attachment{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	}
}
