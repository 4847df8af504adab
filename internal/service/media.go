package service

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MediaHost 是媒体托管服务的调用契约：拿本地暂存文件换一个持久URL，
// 以及按URL删除。具体实现在pkg/mediahost（S3兼容存储+ffprobe）
type MediaHost interface {
	Upload(ctx context.Context, localPath, folder string) (string, error)
	ProbeDuration(ctx context.Context, localPath string) (float64, error)
	Delete(ctx context.Context, url string) error
}

// isDuplicateKeyErr 用errors.As检查错误的“根”是不是MySQL的1062（Duplicate entry）
// 唯一索引冲突在并发场景下是正常分支，不能当成系统错误往上抛
func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
