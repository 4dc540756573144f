package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrTestNotFound         = errors.New("test not found")
	ErrLessonHasTest        = errors.New("lesson already has a test")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrQuestionNotInTest    = errors.New("question not found in this test")
	ErrTestAlreadySubmitted = errors.New("test has already been submitted")
	ErrChoicesRequired      = errors.New("multiple choice questions require selected choices")
	ErrTextAnswerRequired   = errors.New("open ended questions require a text answer")
	ErrNotOpenEnded         = errors.New("only open ended answers can be reviewed")
)
