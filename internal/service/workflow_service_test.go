package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skilltrack_backend/internal/config"
	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/repository"
	"skilltrack_backend/internal/util"
	"skilltrack_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db         *gorm.DB
	workflow   *WorkflowService
	dashboard  *DashboardService
	trainers   *TrainerService
	uploadsDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// 每个测试用独立命名的共享内存库，连接池扩容不会丢表
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	uploadsDir := t.TempDir()
	trainers := NewTrainerService(repository.NewTrainerRepository(db))
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{Type: "local", LocalPath: uploadsDir},
	}}

	return &testEnv{
		db:       db,
		workflow: NewWorkflowService(db, trainers, storage),
		dashboard: NewDashboardService(
			repository.NewCourseRepository(db),
			repository.NewDocumentationRepository(db),
			repository.NewFeedbackRepository(db),
		),
		trainers:   trainers,
		uploadsDir: uploadsDir,
	}
}

func (e *testEnv) createUser(t *testing.T, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func actorFor(user *model.User) Actor {
	return Actor{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("documentation", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["documentation"]
	require.Len(t, files, 1)
	return files[0]
}

func (e *testEnv) reloadCourse(t *testing.T, id string) *model.Course {
	t.Helper()
	var c model.Course
	require.NoError(t, e.db.First(&c, "id = ?", id).Error)
	return &c
}

func (e *testEnv) courseDocs(t *testing.T, courseID string) []model.Documentation {
	t.Helper()
	var docs []model.Documentation
	require.NoError(t, e.db.Where("course_id = ?", courseID).
		Order("revision_number").Find(&docs).Error)
	return docs
}

func TestRequestCourse(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := env.workflow.RequestCourse(actorFor(admin), "   ", "desc", nil)
		assert.ErrorIs(t, err, util.ErrValidation)
	})

	t.Run("creates requested course without trainer", func(t *testing.T) {
		course, err := env.workflow.RequestCourse(actorFor(admin), "Go 并发编程", "goroutine 与 channel", nil)
		require.NoError(t, err)
		assert.Equal(t, model.CourseRequested, course.Status)
		assert.Equal(t, admin.ID, course.UserID)
		assert.Nil(t, course.TrainerID)
	})

	t.Run("unknown trainer preassignment rejected", func(t *testing.T) {
		bogus := model.GenerateUUID()
		_, err := env.workflow.RequestCourse(actorFor(admin), "课程", "", &bogus)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("preassigns an existing trainer profile", func(t *testing.T) {
		trainerUser := env.createUser(t, "zhang.trainer", model.RoleTrainer)
		profile, err := env.trainers.GetOrCreate(trainerUser.ID, trainerUser.Username)
		require.NoError(t, err)

		course, err := env.workflow.RequestCourse(actorFor(admin), "Kubernetes 入门", "", &profile.ID)
		require.NoError(t, err)
		require.NotNil(t, course.TrainerID)
		assert.Equal(t, profile.ID, *course.TrainerID)
		// 预指派不改变初始状态，仍需培训师接受
		assert.Equal(t, model.CourseRequested, course.Status)
	})
}

func TestAcceptCreatesPlaceholderRevision(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)

	course, err := env.workflow.RequestCourse(actorFor(admin), "微服务实战", "", nil)
	require.NoError(t, err)

	accepted, err := env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CourseInReview, accepted.Status)
	require.NotNil(t, accepted.TrainerID)

	docs := env.courseDocs(t, course.ID)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].RevisionNumber)
	assert.Equal(t, model.DocPending, docs[0].Status)
	assert.Empty(t, docs[0].FilePath)
}

func TestAcceptGuards(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainerA := env.createUser(t, "trainer.a", model.RoleTrainer)
	trainerB := env.createUser(t, "trainer.b", model.RoleTrainer)

	t.Run("second accept loses", func(t *testing.T) {
		course, err := env.workflow.RequestCourse(actorFor(admin), "双重接受", "", nil)
		require.NoError(t, err)

		_, err = env.workflow.Accept(actorFor(trainerA), course.ID)
		require.NoError(t, err)

		_, err = env.workflow.Accept(actorFor(trainerB), course.ID)
		assert.ErrorIs(t, err, util.ErrStateConflict)

		// 只产生一条占位记录
		docs := env.courseDocs(t, course.ID)
		assert.Len(t, docs, 1)
	})

	t.Run("preassigned course cannot be taken by another trainer", func(t *testing.T) {
		profileA, err := env.trainers.GetOrCreate(trainerA.ID, trainerA.Username)
		require.NoError(t, err)

		course, err := env.workflow.RequestCourse(actorFor(admin), "指派课程", "", &profileA.ID)
		require.NoError(t, err)

		_, err = env.workflow.Accept(actorFor(trainerB), course.ID)
		assert.ErrorIs(t, err, util.ErrCourseTaken)

		_, err = env.workflow.Accept(actorFor(trainerA), course.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := env.workflow.Accept(actorFor(trainerA), model.GenerateUUID())
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestDecline(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainerA := env.createUser(t, "trainer.a", model.RoleTrainer)
	trainerB := env.createUser(t, "trainer.b", model.RoleTrainer)

	profileA, err := env.trainers.GetOrCreate(trainerA.ID, trainerA.Username)
	require.NoError(t, err)

	course, err := env.workflow.RequestCourse(actorFor(admin), "可放弃课程", "", &profileA.ID)
	require.NoError(t, err)

	// 别人不能替他放弃
	_, err = env.workflow.Decline(actorFor(trainerB), course.ID)
	assert.ErrorIs(t, err, util.ErrStateConflict)

	declined, err := env.workflow.Decline(actorFor(trainerA), course.ID)
	require.NoError(t, err)
	assert.Nil(t, declined.TrainerID)
	assert.Equal(t, model.CourseRequested, declined.Status)

	// 放弃后任何培训师都可以接手
	_, err = env.workflow.Accept(actorFor(trainerB), course.ID)
	assert.NoError(t, err)
}

func TestSchedule(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	other := env.createUser(t, "admin2", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)

	course, err := env.workflow.RequestCourse(actorFor(admin), "待排期课程", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	t.Run("bad datetime leaves state untouched", func(t *testing.T) {
		for _, input := range []string{"", "not-a-date", "2026/01/01 10:00"} {
			_, err := env.workflow.Schedule(actorFor(admin), course.ID, input)
			assert.ErrorIs(t, err, util.ErrValidation, "input %q", input)
		}
		reloaded := env.reloadCourse(t, course.ID)
		assert.Equal(t, model.CourseInReview, reloaded.Status)
		assert.Nil(t, reloaded.ScheduledTime)
	})

	t.Run("foreign admin sees not found", func(t *testing.T) {
		_, err := env.workflow.Schedule(actorFor(other), course.ID, "2026-09-01 10:00:00")
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("valid datetime approves", func(t *testing.T) {
		scheduled, err := env.workflow.Schedule(actorFor(admin), course.ID, "2026-09-01 10:00:00")
		require.NoError(t, err)
		assert.Equal(t, model.CourseApproved, scheduled.Status)
		require.NotNil(t, scheduled.ScheduledTime)
		assert.Equal(t, 2026, scheduled.ScheduledTime.Year())
	})

	t.Run("rescheduling an approved course conflicts", func(t *testing.T) {
		_, err := env.workflow.Schedule(actorFor(admin), course.ID, "2026-09-02 10:00:00")
		assert.ErrorIs(t, err, util.ErrStateConflict)
	})

	t.Run("microsecond layout accepted", func(t *testing.T) {
		c2, err := env.workflow.RequestCourse(actorFor(admin), "微秒格式", "", nil)
		require.NoError(t, err)
		_, err = env.workflow.Accept(actorFor(trainer), c2.ID)
		require.NoError(t, err)

		scheduled, err := env.workflow.Schedule(actorFor(admin), c2.ID, "2026-09-01 10:00:00.123456")
		require.NoError(t, err)
		assert.Equal(t, model.CourseApproved, scheduled.Status)
	})
}

func TestSubmitDocumentation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)
	ctx := context.Background()

	course, err := env.workflow.RequestCourse(actorFor(admin), "资料上传", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	t.Run("disallowed extension rejected", func(t *testing.T) {
		fh := makeFileHeader(t, "malware.exe", "MZ")
		_, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, fh)
		assert.ErrorIs(t, err, util.ErrFileTypeNotAllowed)
	})

	t.Run("upload becomes next revision", func(t *testing.T) {
		fh := makeFileHeader(t, "slides.pdf", "%PDF-1.7")
		doc, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, fh)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.RevisionNumber)
		assert.Equal(t, model.DocPending, doc.Status)
		assert.True(t, strings.HasSuffix(doc.FilePath, "slides.pdf"))

		// 文件真的写进了本地存储目录
		stored := filepath.Join(env.uploadsDir, "docs", course.ID, "slides.pdf")
		data, err := os.ReadFile(stored)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7", string(data))
	})

	t.Run("foreign trainer sees not found", func(t *testing.T) {
		intruder := env.createUser(t, "trainer2", model.RoleTrainer)
		fh := makeFileHeader(t, "notes.docx", "zip")
		_, err := env.workflow.SubmitDocumentation(ctx, actorFor(intruder), course.ID, fh)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestReviewGuards(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)
	observer := env.createUser(t, "observer1", model.RoleObserver)
	ctx := context.Background()

	course, err := env.workflow.RequestCourse(actorFor(admin), "审阅守卫", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	placeholder := env.courseDocs(t, course.ID)[0]

	t.Run("unknown action", func(t *testing.T) {
		_, err := env.workflow.Review(actorFor(observer), placeholder.ID, "escalate", "bad", nil)
		assert.ErrorIs(t, err, util.ErrUnknownAction)
	})

	t.Run("placeholder cannot be approved", func(t *testing.T) {
		_, err := env.workflow.Review(actorFor(observer), placeholder.ID, ReviewApprove, "", nil)
		assert.ErrorIs(t, err, util.ErrPlaceholderDoc)
	})

	t.Run("reject without feedback is a no-op", func(t *testing.T) {
		fh := makeFileHeader(t, "v1.pdf", "%PDF")
		doc, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, fh)
		require.NoError(t, err)

		_, err = env.workflow.Review(actorFor(observer), doc.ID, ReviewReject, "   ", nil)
		assert.ErrorIs(t, err, util.ErrFeedbackRequired)

		var reloaded model.Documentation
		require.NoError(t, env.db.First(&reloaded, "id = ?", doc.ID).Error)
		assert.Equal(t, model.DocPending, reloaded.Status)
		assert.Equal(t, doc.RevisionNumber, reloaded.RevisionNumber)
		assert.Equal(t, model.CourseInReview, env.reloadCourse(t, course.ID).Status)

		var feedbackCount int64
		require.NoError(t, env.db.Model(&model.Feedback{}).Count(&feedbackCount).Error)
		assert.Zero(t, feedbackCount)
	})

	t.Run("closed documentation cannot be reviewed again", func(t *testing.T) {
		docs := env.courseDocs(t, course.ID)
		latest := docs[len(docs)-1]

		reviewed, err := env.workflow.Review(actorFor(observer), latest.ID, ReviewApprove, "", nil)
		require.NoError(t, err)
		assert.Equal(t, model.DocApproved, reviewed.Status)

		_, err = env.workflow.Review(actorFor(observer), latest.ID, ReviewReject, "changed my mind", nil)
		assert.ErrorIs(t, err, util.ErrDocumentationClosed)
	})
}

// 接受=1，上传=2，驳回将被审版本推进到 3，重新上传=4，批准推进到 5
func TestRevisionNumberingScenario(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)
	observer := env.createUser(t, "observer1", model.RoleObserver)
	ctx := context.Background()

	course, err := env.workflow.RequestCourse(actorFor(admin), "修订号场景", "", nil)
	require.NoError(t, err)

	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)
	require.Equal(t, 1, env.courseDocs(t, course.ID)[0].RevisionNumber)

	// 上传第一份真实文件
	doc, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, makeFileHeader(t, "draft.pdf", "%PDF"))
	require.NoError(t, err)
	require.Equal(t, 2, doc.RevisionNumber)

	// 驳回：被审版本修订号 +1，课程进入 Rejected，反馈落库
	rating := 2
	rejected, err := env.workflow.Review(actorFor(observer), doc.ID, ReviewReject, "结构太乱，重写第二章", &rating)
	require.NoError(t, err)
	assert.Equal(t, 3, rejected.RevisionNumber)
	assert.Equal(t, model.DocRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	assert.Equal(t, model.CourseRejected, env.reloadCourse(t, course.ID).Status)

	var feedbacks []model.Feedback
	require.NoError(t, env.db.Where("documentation_id = ?", doc.ID).Find(&feedbacks).Error)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, "结构太乱，重写第二章", feedbacks[0].Comments)
	require.NotNil(t, feedbacks[0].Rating)
	assert.Equal(t, 2, *feedbacks[0].Rating)

	// 显式重新送审：课程回到 In Review，最新版本重新 Pending，修订号不变
	resubmitted, err := env.workflow.Resubmit(actorFor(trainer), course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CourseInReview, resubmitted.Status)

	var latest model.Documentation
	require.NoError(t, env.db.Where("course_id = ?", course.ID).
		Order("revision_number DESC").First(&latest).Error)
	assert.Equal(t, 3, latest.RevisionNumber)
	assert.Equal(t, model.DocPending, latest.Status)

	// 修复后的新文件接在最大修订号之后
	doc2, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, makeFileHeader(t, "final.pdf", "%PDF"))
	require.NoError(t, err)
	require.Equal(t, 4, doc2.RevisionNumber)

	// 批准：再次 +1，课程 Approved
	approved, err := env.workflow.Review(actorFor(observer), doc2.ID, ReviewApprove, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, approved.RevisionNumber)
	assert.Equal(t, model.DocApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, model.CourseApproved, env.reloadCourse(t, course.ID).Status)

	// 全程修订号严格递增
	docs := env.courseDocs(t, course.ID)
	for i := 1; i < len(docs); i++ {
		assert.Greater(t, docs[i].RevisionNumber, docs[i-1].RevisionNumber)
	}

	// 课程一旦离开 Requested，培训师绑定不再为空
	assert.NotNil(t, env.reloadCourse(t, course.ID).TrainerID)
}

// 同一课程内修订号重复由联合唯一索引在存储层拒绝，
// 并发上传读到相同最大值时只有一条插入能落库
func TestRevisionNumberUniquePerCourse(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)

	course, err := env.workflow.RequestCourse(actorFor(admin), "修订号唯一", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	dup := &model.Documentation{
		CourseID:       course.ID,
		FilePath:       "/uploads/docs/dup.pdf",
		Status:         model.DocPending,
		RevisionNumber: 1,
		SubmittedAt:    time.Now(),
	}
	err = env.db.Create(dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 不同课程可以复用相同修订号
	other, err := env.workflow.RequestCourse(actorFor(admin), "另一门课", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), other.ID)
	assert.NoError(t, err)
}

// 审旧版本会把修订号推进到已被占用的值，必须在守卫处拦下
func TestReviewSupersededRevision(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)
	observer := env.createUser(t, "observer1", model.RoleObserver)
	ctx := context.Background()

	course, err := env.workflow.RequestCourse(actorFor(admin), "旧版本审阅", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	placeholder := env.courseDocs(t, course.ID)[0]

	_, err = env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, makeFileHeader(t, "v2.pdf", "%PDF"))
	require.NoError(t, err)

	// 占位记录已不是当前版本，驳回它会与修订号 2 冲突
	_, err = env.workflow.Review(actorFor(observer), placeholder.ID, ReviewReject, "过期版本", nil)
	assert.ErrorIs(t, err, util.ErrStateConflict)

	// 旧版本仍保持原样，课程状态未动
	var reloaded model.Documentation
	require.NoError(t, env.db.First(&reloaded, "id = ?", placeholder.ID).Error)
	assert.Equal(t, 1, reloaded.RevisionNumber)
	assert.Equal(t, model.DocPending, reloaded.Status)
	assert.Equal(t, model.CourseInReview, env.reloadCourse(t, course.ID).Status)
}

func TestResubmitOnlyWhenRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)

	course, err := env.workflow.RequestCourse(actorFor(admin), "重复送审", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)

	_, err = env.workflow.Resubmit(actorFor(trainer), course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotRejected)
}

func TestCompleteAndSessionFollowups(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin1", model.RoleAdmin)
	trainer := env.createUser(t, "trainer1", model.RoleTrainer)
	observer := env.createUser(t, "observer1", model.RoleObserver)
	ctx := context.Background()

	course, err := env.workflow.RequestCourse(actorFor(admin), "完整交付", "", nil)
	require.NoError(t, err)
	_, err = env.workflow.Accept(actorFor(trainer), course.ID)
	require.NoError(t, err)
	doc, err := env.workflow.SubmitDocumentation(ctx, actorFor(trainer), course.ID, makeFileHeader(t, "final.pptx", "zip"))
	require.NoError(t, err)
	_, err = env.workflow.Review(actorFor(observer), doc.ID, ReviewApprove, "", nil)
	require.NoError(t, err)

	t.Run("rating before completion conflicts", func(t *testing.T) {
		rating := 5
		_, err := env.workflow.RateSession(actorFor(trainer), course.ID, "讲得不错", &rating)
		assert.ErrorIs(t, err, util.ErrCourseNotCompleted)
	})

	t.Run("complete requires approved and owner", func(t *testing.T) {
		other := env.createUser(t, "admin2", model.RoleAdmin)
		_, err := env.workflow.Complete(actorFor(other), course.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)

		completed, err := env.workflow.Complete(actorFor(admin), course.ID)
		require.NoError(t, err)
		assert.Equal(t, model.CourseCompleted, completed.Status)

		_, err = env.workflow.Complete(actorFor(admin), course.ID)
		assert.ErrorIs(t, err, util.ErrCourseNotApproved)
	})

	t.Run("session rating lands on current revision", func(t *testing.T) {
		_, err := env.workflow.RateSession(actorFor(trainer), course.ID, "  ", nil)
		assert.ErrorIs(t, err, util.ErrCommentsRequired)

		rating := 4
		fb, err := env.workflow.RateSession(actorFor(trainer), course.ID, "现场反响很好", &rating)
		require.NoError(t, err)

		var latest model.Documentation
		require.NoError(t, env.db.Where("course_id = ?", course.ID).
			Order("revision_number DESC").First(&latest).Error)
		assert.Equal(t, latest.ID, fb.DocumentationID)
	})

	t.Run("completion report saved", func(t *testing.T) {
		updated, err := env.workflow.SubmitCompletionReport(actorFor(trainer), course.ID, "12 人参加，通过率 92%")
		require.NoError(t, err)
		assert.Equal(t, "12 人参加，通过率 92%", updated.CompletionReport)
		assert.Equal(t, "12 人参加，通过率 92%", env.reloadCourse(t, course.ID).CompletionReport)
	})
}

func TestErrorCategoryMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category error
	}{
		{"feedback required is validation", util.ErrFeedbackRequired, util.ErrValidation},
		{"bad schedule time is validation", util.ErrBadScheduleTime, util.ErrValidation},
		{"course not found", util.ErrCourseNotFound, util.ErrNotFound},
		{"course taken is state conflict", util.ErrCourseTaken, util.ErrStateConflict},
		{"placeholder doc is state conflict", util.ErrPlaceholderDoc, util.ErrStateConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.err, tc.category))
		})
	}
}
