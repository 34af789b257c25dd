package model

import "time"

// User は求職者を表す。
// IDは外部IDプロバイダのsubject idをそのまま使用し、ライフサイクルは
// Webhook経由のイベント（作成・更新・削除）で完全に外部駆動される。
// ローカルパスワードは持たない。
type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	ResumeURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
