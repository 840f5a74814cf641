package service

import "errors"

var (
	ErrProductNotFound  = errors.New("商品不存在")
	ErrSessionNotFound  = errors.New("选择会话不存在或已过期")
	ErrInvalidAttribute = errors.New("无效的规格属性")
	ErrInvalidMode      = errors.New("无效的选择模式")
	ErrImageNotFound    = errors.New("图片不属于该商品")
)
