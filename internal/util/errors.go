package util

import (
	"errors"
	"fmt"
)

// 错误类别，具体错误用 %w 包装其一，控制器通过 errors.Is 映射状态码
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrStateConflict = errors.New("state conflict")
	ErrStorage       = errors.New("storage failure")
	ErrDependency    = errors.New("dependency failure")
)

var (
	ErrEmailRegistered    = fmt.Errorf("%w: 该邮箱已被注册", ErrValidation)
	ErrUsernameRegistered = fmt.Errorf("%w: 该用户名已被注册", ErrValidation)
	ErrFeedbackRequired   = fmt.Errorf("%w: rejecting requires feedback text", ErrValidation)
	ErrCommentsRequired   = fmt.Errorf("%w: comments must not be blank", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name must not be blank", ErrValidation)
	ErrTitleRequired      = fmt.Errorf("%w: title must not be blank", ErrValidation)
	ErrBadScheduleTime    = fmt.Errorf("%w: invalid datetime, use YYYY-MM-DD HH:MM:SS", ErrValidation)
	ErrFileTypeNotAllowed = fmt.Errorf("%w: file type not allowed", ErrValidation)
	ErrUnknownAction      = fmt.Errorf("%w: unknown review action", ErrValidation)

	ErrCourseNotFound        = fmt.Errorf("%w: course", ErrNotFound)
	ErrTrainerNotFound       = fmt.Errorf("%w: trainer", ErrNotFound)
	ErrDocumentationNotFound = fmt.Errorf("%w: documentation", ErrNotFound)

	ErrCourseNotRequested  = fmt.Errorf("%w: course is not awaiting acceptance", ErrStateConflict)
	ErrCourseNotInReview   = fmt.Errorf("%w: course is not in review", ErrStateConflict)
	ErrCourseNotRejected   = fmt.Errorf("%w: course has not been rejected", ErrStateConflict)
	ErrCourseNotApproved   = fmt.Errorf("%w: course is not approved", ErrStateConflict)
	ErrCourseNotCompleted  = fmt.Errorf("%w: course is not completed", ErrStateConflict)
	ErrCourseTaken         = fmt.Errorf("%w: course already assigned to another trainer", ErrStateConflict)
	ErrDocumentationClosed     = fmt.Errorf("%w: documentation is not pending review", ErrStateConflict)
	ErrDocumentationSuperseded = fmt.Errorf("%w: a newer revision of this documentation exists", ErrStateConflict)
	ErrPlaceholderDoc          = fmt.Errorf("%w: no file has been uploaded for this documentation", ErrStateConflict)
	ErrRevisionConflict        = fmt.Errorf("%w: concurrent documentation update, retry", ErrStateConflict)
)
