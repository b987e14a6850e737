package service

import (
	"errors"

	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// storeError 把存储层错误翻译成API错误。
// 哨兵之外的一切存储错误都视为暂时不可用，由调用方决定是否退避重试，
// 核心层不做内部重试，也不吞掉任何失败。
func storeError(err error, resource string) *utils.ApiError {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.CreateNotFoundError(resource)
	}
	return utils.CreateStoreUnavailableError(err)
}
