package models

import "time"

type Identity struct {
	ID                 string       `gorm:"type:uuid;primaryKey"`
	Code               int64        `gorm:"not null;uniqueIndex"`
	FullName           string       `gorm:"size:255;not null"`
	Email              *string      `gorm:"size:320;uniqueIndex"`
	Phone              *string      `gorm:"size:32;uniqueIndex"`
	AccountType        *string      `gorm:"size:32"`
	Nationality        *string      `gorm:"size:120"`
	CountryOfResidence *string      `gorm:"size:120"`
	Town               *string      `gorm:"size:120"`
	DateOfBirth        *time.Time   `gorm:"type:date"`
	Gender             *string      `gorm:"size:16"`
	TaxID              *string      `gorm:"size:64"`
	Address            *string      `gorm:"type:text"`
	SubAccounts        []SubAccount `gorm:"foreignKey:IdentityID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Identity) TableName() string {
	return "identities"
}

type SubAccount struct {
	ID         int64  `gorm:"primaryKey"`
	IdentityID string `gorm:"type:uuid;not null;uniqueIndex:idx_sub_accounts_identity_kind"`
	Kind       string `gorm:"size:32;not null;uniqueIndex:idx_sub_accounts_identity_kind"`
	CreatedAt  time.Time
}

func (SubAccount) TableName() string {
	return "sub_accounts"
}
