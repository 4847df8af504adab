package service

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"context"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// 各service的单元测试共用的内存版repo，行为对齐MySQL实现：
// 查不到返回gorm.ErrRecordNotFound，撞唯一索引返回1062

func duplicateKeyErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

/* ---------- userRepo ---------- */

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
	// hideFromLookup 模拟并发注册的竞态窗口：查重读不到，但Create仍会撞唯一索引
	hideFromLookup bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return duplicateKeyErr()
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(userID uint64) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	if f.hideFromLookup {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SearchByUsername(keyword string, limit int) ([]model.User, error) {
	var result []model.User
	for _, u := range f.users {
		if strings.Contains(u.Username, keyword) {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) UpdateRefreshToken(userID uint64, refreshToken *string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshToken = refreshToken
	return nil
}

func (f *fakeUserRepo) RotateRefreshToken(userID uint64, oldToken, newToken string) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	// 和MySQL实现一样的CAS语义：旧值对不上就换不动
	if u.RefreshToken == nil || *u.RefreshToken != oldToken {
		return false, nil
	}
	u.RefreshToken = &newToken
	return true, nil
}

func (f *fakeUserRepo) UpdatePassword(userID uint64, hashedPassword string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) UpdateAccount(userID uint64, fullname, email string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if fullname != "" {
		u.FullName = fullname
	}
	if email != "" {
		u.Email = email
	}
	return nil
}

func (f *fakeUserRepo) UpdateAvatar(userID uint64, avatarURL string) error {
	f.users[userID].AvatarURL = avatarURL
	return nil
}

func (f *fakeUserRepo) UpdateCover(userID uint64, coverURL string) error {
	f.users[userID].CoverURL = coverURL
	return nil
}

/* ---------- mediaHost ---------- */

type fakeMedia struct {
	uploads int
	deleted []string
	failAll bool
}

func (f *fakeMedia) Upload(ctx context.Context, localPath, folder string) (string, error) {
	if f.failAll {
		return "", fmt.Errorf("upload refused")
	}
	f.uploads++
	return fmt.Sprintf("https://media.test/%s/%d", folder, f.uploads), nil
}

func (f *fakeMedia) ProbeDuration(ctx context.Context, localPath string) (float64, error) {
	return 42.5, nil
}

func (f *fakeMedia) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

/* ---------- videoRepo ---------- */

type fakeVideoRepo struct {
	videos map[uint64]*model.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[uint64]*model.Video{}}
}

func (f *fakeVideoRepo) Create(video *model.Video) error {
	video.ID = uint64(len(f.videos) + 1)
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(videoID uint64) (*model.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideoRepo) FindLatestPublished(limit uint64) ([]model.Video, error) { return nil, nil }
func (f *fakeVideoRepo) FindByOwner(ownerID uint64, limit int) ([]model.Video, error) {
	var out []model.Video
	for id := uint64(1); id <= uint64(len(f.videos)); id++ {
		v, ok := f.videos[id]
		if !ok || v.OwnerID != ownerID {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *v)
	}
	return out, nil
}
func (f *fakeVideoRepo) UpdateFields(videoID uint64, fields map[string]interface{}) (int64, error) {
	return 1, nil
}
func (f *fakeVideoRepo) Delete(videoID uint64) (int64, error) {
	delete(f.videos, videoID)
	return 1, nil
}
func (f *fakeVideoRepo) TogglePublished(videoID uint64) (int64, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return 0, nil
	}
	v.IsPublished = !v.IsPublished
	return 1, nil
}

func (f *fakeVideoRepo) IncrementLikeCount(videoID uint64) error {
	f.videos[videoID].LikeCount++
	return nil
}

func (f *fakeVideoRepo) DecrementLikeCount(videoID uint64) error {
	if f.videos[videoID].LikeCount > 0 {
		f.videos[videoID].LikeCount--
	}
	return nil
}

func (f *fakeVideoRepo) IncrementViewCount(videoID uint64) error {
	f.videos[videoID].ViewCount++
	return nil
}

func (f *fakeVideoRepo) CountByOwner(ownerID uint64) (int64, error) {
	var n int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeVideoRepo) SumViewsByOwner(ownerID uint64) (int64, error) {
	var sum int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			sum += int64(v.ViewCount)
		}
	}
	return sum, nil
}

func (f *fakeVideoRepo) GetVideoCache(videoID uint64) (*model.Video, error)  { return nil, nil }
func (f *fakeVideoRepo) SetVideoCache(video *model.Video) error              { return nil }
func (f *fakeVideoRepo) InvalidateVideoCache(videoID uint64) error           { return nil }
func (f *fakeVideoRepo) WithTx(tx *gorm.DB) repository.VideoRepository      { return f }

/* ---------- likeRepo ---------- */

type likeKey struct {
	userID     uint64
	targetType model.LikeTarget
	targetID   uint64
}

type fakeLikeRepo struct {
	rows map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{rows: map[likeKey]bool{}}
}

func (f *fakeLikeRepo) Create(like *model.Like) error {
	k := likeKey{like.UserID, like.TargetType, like.TargetID}
	if f.rows[k] {
		return duplicateKeyErr()
	}
	f.rows[k] = true
	return nil
}

func (f *fakeLikeRepo) Delete(userID uint64, targetType model.LikeTarget, targetID uint64) (int64, error) {
	k := likeKey{userID, targetType, targetID}
	if !f.rows[k] {
		return 0, nil
	}
	delete(f.rows, k)
	return 1, nil
}

func (f *fakeLikeRepo) CountForTarget(targetType model.LikeTarget, targetID uint64) (int64, error) {
	var n int64
	for k := range f.rows {
		if k.targetType == targetType && k.targetID == targetID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) FindVideosLikedBy(userID uint64) ([]model.Video, error) { return nil, nil }
func (f *fakeLikeRepo) CountVideoLikesByOwner(ownerID uint64) (int64, error)   { return 0, nil }

func (f *fakeLikeRepo) DeleteByTarget(targetType model.LikeTarget, targetID uint64) error {
	for k := range f.rows {
		if k.targetType == targetType && k.targetID == targetID {
			delete(f.rows, k)
		}
	}
	return nil
}

func (f *fakeLikeRepo) WithTx(tx *gorm.DB) repository.LikeRepository { return f }

/* ---------- subscriptionRepo ---------- */

type subKey struct {
	subscriberID uint64
	channelID    uint64
}

type fakeSubscriptionRepo struct {
	edges map[subKey]bool
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{edges: map[subKey]bool{}}
}

func (f *fakeSubscriptionRepo) Create(sub *model.Subscription) error {
	k := subKey{sub.SubscriberID, sub.ChannelID}
	if f.edges[k] {
		return duplicateKeyErr()
	}
	f.edges[k] = true
	return nil
}

func (f *fakeSubscriptionRepo) Delete(subscriberID, channelID uint64) (int64, error) {
	k := subKey{subscriberID, channelID}
	if !f.edges[k] {
		return 0, nil
	}
	delete(f.edges, k)
	return 1, nil
}

func (f *fakeSubscriptionRepo) CountSubscribers(channelID uint64) (int64, error) {
	var n int64
	for k := range f.edges {
		if k.channelID == channelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionRepo) CountSubscribedTo(subscriberID uint64) (int64, error) {
	var n int64
	for k := range f.edges {
		if k.subscriberID == subscriberID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionRepo) IsSubscribed(subscriberID, channelID uint64) (bool, error) {
	return f.edges[subKey{subscriberID, channelID}], nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(channelID uint64) ([]model.User, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListSubscribedChannels(subscriberID uint64) ([]model.User, error) {
	return nil, nil
}

/* ---------- commentRepo / tweetRepo / historyRepo ---------- */

type fakeCommentRepo struct {
	comments map[uint64]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint64]*model.Comment{}}
}

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	comment.ID = uint64(len(f.comments) + 1)
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(commentID uint64) (*model.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, error) {
	var all []model.Comment
	for id := uint64(1); id <= uint64(len(f.comments)); id++ {
		if c, ok := f.comments[id]; ok && c.VideoID == videoID {
			all = append(all, *c)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeCommentRepo) CountByVideo(videoID uint64) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	return n, nil
}
func (f *fakeCommentRepo) UpdateContent(commentID uint64, content string) (int64, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return 0, nil
	}
	c.Content = content
	return 1, nil
}
func (f *fakeCommentRepo) Delete(commentID uint64) (int64, error) {
	if _, ok := f.comments[commentID]; !ok {
		return 0, nil
	}
	delete(f.comments, commentID)
	return 1, nil
}
func (f *fakeCommentRepo) DeleteByVideo(videoID uint64) error                 { return nil }
func (f *fakeCommentRepo) WithTx(tx *gorm.DB) repository.CommentRepository   { return f }

type fakeTweetRepo struct {
	tweets map[uint64]*model.Tweet
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[uint64]*model.Tweet{}}
}

func (f *fakeTweetRepo) Create(tweet *model.Tweet) error {
	tweet.ID = uint64(len(f.tweets) + 1)
	f.tweets[tweet.ID] = tweet
	return nil
}

func (f *fakeTweetRepo) FindByID(tweetID uint64) (*model.Tweet, error) {
	t, ok := f.tweets[tweetID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTweetRepo) ListByOwner(ownerID uint64) ([]model.Tweet, error) { return nil, nil }
func (f *fakeTweetRepo) UpdateContent(tweetID uint64, content string) (int64, error) {
	return 1, nil
}
func (f *fakeTweetRepo) Delete(tweetID uint64) (int64, error) {
	delete(f.tweets, tweetID)
	return 1, nil
}

type fakePlaylistRepo struct {
	playlists map[uint64]*model.Playlist
	members   map[subKey]bool // (playlistID, videoID)复用subKey结构
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: map[uint64]*model.Playlist{},
		members:   map[subKey]bool{},
	}
}

func (f *fakePlaylistRepo) Create(playlist *model.Playlist) error {
	playlist.ID = uint64(len(f.playlists) + 1)
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) FindByID(playlistID uint64) (*model.Playlist, error) {
	p, ok := f.playlists[playlistID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlaylistRepo) ListByOwner(ownerID uint64) ([]model.Playlist, error) {
	var result []model.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePlaylistRepo) UpdateFields(playlistID uint64, fields map[string]interface{}) (int64, error) {
	p, ok := f.playlists[playlistID]
	if !ok {
		return 0, nil
	}
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if description, ok := fields["description"].(string); ok {
		p.Description = description
	}
	return 1, nil
}

func (f *fakePlaylistRepo) Delete(playlistID uint64) (int64, error) {
	if _, ok := f.playlists[playlistID]; !ok {
		return 0, nil
	}
	delete(f.playlists, playlistID)
	for k := range f.members {
		if k.subscriberID == playlistID {
			delete(f.members, k)
		}
	}
	return 1, nil
}

func (f *fakePlaylistRepo) AddVideo(playlistID, videoID uint64) error {
	k := subKey{playlistID, videoID}
	if f.members[k] {
		return duplicateKeyErr()
	}
	f.members[k] = true
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	k := subKey{playlistID, videoID}
	if !f.members[k] {
		return 0, nil
	}
	delete(f.members, k)
	return 1, nil
}

func (f *fakePlaylistRepo) HasVideo(playlistID, videoID uint64) (bool, error) {
	return f.members[subKey{playlistID, videoID}], nil
}

func (f *fakePlaylistRepo) RemoveVideoFromAll(videoID uint64) error {
	for k := range f.members {
		if k.channelID == videoID {
			delete(f.members, k)
		}
	}
	return nil
}

func (f *fakePlaylistRepo) WithTx(tx *gorm.DB) repository.PlaylistRepository { return f }

type fakeHistoryRepo struct {
	views   map[subKey]bool // (viewerID, videoID)复用subKey结构
	history []subKey        // (userID, videoID)，按首次观看顺序
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{views: map[subKey]bool{}}
}

func (f *fakeHistoryRepo) RecordView(videoID, viewerID uint64) (bool, error) {
	k := subKey{viewerID, videoID}
	if f.views[k] {
		return false, nil
	}
	f.views[k] = true
	return true, nil
}

func (f *fakeHistoryRepo) AddToHistory(userID, videoID uint64) error {
	k := subKey{userID, videoID}
	for _, existing := range f.history {
		if existing == k {
			return nil
		}
	}
	f.history = append(f.history, k)
	return nil
}

func (f *fakeHistoryRepo) ListByUser(userID uint64) ([]model.WatchHistory, error) {
	var entries []model.WatchHistory
	for _, k := range f.history {
		if k.subscriberID == userID {
			entries = append(entries, model.WatchHistory{UserID: k.subscriberID, VideoID: k.channelID})
		}
	}
	return entries, nil
}
func (f *fakeHistoryRepo) DeleteByVideo(videoID uint64) error               { return nil }
func (f *fakeHistoryRepo) WithTx(tx *gorm.DB) repository.HistoryRepository { return f }

/* ---------- unit of work ---------- */

// fakeUnitOfWork 不模拟回滚，只把同一批内存repo原样传给fn，
// 用来验证service在事务里做了哪些操作
type fakeUnitOfWork struct {
	videoRepo    repository.VideoRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	playlistRepo repository.PlaylistRepository
	historyRepo  repository.HistoryRepository
}

func (f *fakeUnitOfWork) Execute(fn func(repos *data.TransactionalRepositories) error) error {
	return fn(&data.TransactionalRepositories{
		VideoRepo:    f.videoRepo,
		LikeRepo:     f.likeRepo,
		CommentRepo:  f.commentRepo,
		PlaylistRepo: f.playlistRepo,
		HistoryRepo:  f.historyRepo,
	})
}
