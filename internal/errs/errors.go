// Package errs 定义了跨层使用的哨兵错误，service层返回，handler层统一映射为HTTP状态码
package errs

import "errors"

var (
	// ErrValidation 请求缺少必填字段或字段值非法
	ErrValidation = errors.New("参数校验失败")

	// ErrNotFound 请求的资源（用户/视频/评论/动态/播放列表）不存在
	ErrNotFound = errors.New("资源不存在")

	// ErrAlreadyExists 唯一性约束冲突，比如用户名或邮箱已被占用
	ErrAlreadyExists = errors.New("资源已存在")

	// ErrInvalidCredentials 登录失败。注意：用户不存在和密码错误必须返回同一个错误，
	// 防止攻击者通过错误信息探测某个用户名是否已注册
	ErrInvalidCredentials = errors.New("用户名或密码错误")

	// ErrUnauthorized 请求未携带会话凭证
	ErrUnauthorized = errors.New("未登录或会话已失效")

	// ErrInvalidToken 令牌签名无效、已过期或载荷对应的用户不存在
	ErrInvalidToken = errors.New("无效的令牌")

	// ErrTokenReused 刷新令牌与库中持久化的不一致，说明它已被上一次轮换淘汰（令牌重放）
	ErrTokenReused = errors.New("刷新令牌已过期或已被使用")

	// ErrUpstream 外部媒体托管服务（上传/删除）失败
	ErrUpstream = errors.New("上游服务调用失败")
)
