package service

import "errors"

// 服务层哨兵错误
// "不存在"和"不归你所有/不在预期状态"刻意合并为同一个 NotFound 信号,
// 避免向调用方泄露归属信息
var (
	ErrTaskNotFound         = errors.New("task not found or not assigned to you")
	ErrJobNotFound          = errors.New("job not found")
	ErrFreelancerNotFound   = errors.New("freelancer not found")
	ErrQAMemberNotFound     = errors.New("qa member not found")
	ErrLanguageNotFound     = errors.New("language not found")
	ErrLanguagePairNotFound = errors.New("freelancer language pair not found")

	// ErrNoAssignmentTime 数据完整性错误: 已认领任务缺少认领时间
	ErrNoAssignmentTime = errors.New("task has no assignment time set")
)
