package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

// 用户仓库接口：注册查重、各种维度的查找，以及会话状态（refresh_token字段）的写入
// refresh_token只有这里的三个写方法能碰，调用方仅限token签发和会话轮换逻辑
type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByUsernameOrEmail(username, email string) (*model.User, error)
	SearchByUsername(keyword string, limit int) ([]model.User, error)

	UpdateRefreshToken(userID uint64, refreshToken *string) error
	// RotateRefreshToken 原子地“比较并交换”：只有库里存的还是oldToken时才换成newToken
	// 返回false说明oldToken已经被上一次轮换淘汰（令牌重放）或者并发轮换输了
	RotateRefreshToken(userID uint64, oldToken, newToken string) (bool, error)

	UpdatePassword(userID uint64, hashedPassword string) error
	UpdateAccount(userID uint64, fullname, email string) error
	UpdateAvatar(userID uint64, avatarURL string) error
	UpdateCover(userID uint64, coverURL string) error
}

// 数据库接口封装
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// 登录入口允许用户名或邮箱二选一，注册查重也要两个维度一起查
func (r *userRepository) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) SearchByUsername(keyword string, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("username LIKE ?", keyword+"%").Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateRefreshToken(userID uint64, refreshToken *string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error
}

func (r *userRepository) RotateRefreshToken(userID uint64, oldToken, newToken string) (bool, error) {
	// UPDATE users SET refresh_token = ? WHERE id = ? AND refresh_token = ?
	// WHERE条件里带上旧值，让MySQL的行锁替我们完成CAS，两次并发轮换只会有一个成功
	result := r.db.Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Update("refresh_token", newToken)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userRepository) UpdatePassword(userID uint64, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateAccount(userID uint64, fullname, email string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"full_name": fullname, "email": email}).Error
}

func (r *userRepository) UpdateAvatar(userID uint64, avatarURL string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

func (r *userRepository) UpdateCover(userID uint64, coverURL string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("cover_url", coverURL).Error
}
