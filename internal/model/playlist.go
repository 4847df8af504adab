package model

type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"type:text"`

	Owner User `gorm:"foreignKey:OwnerID"`
	// many2many由PlaylistVideo这张显式的join表承载
	Videos []Video `gorm:"many2many:playlist_videos;"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 是播放列表和视频的成员关系，联合唯一索引保证一个视频在一个列表里只出现一次
type PlaylistVideo struct {
	PlaylistID uint64 `gorm:"primaryKey"`
	VideoID    uint64 `gorm:"primaryKey"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
