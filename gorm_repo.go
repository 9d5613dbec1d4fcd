package socialmedia

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormAccount struct {
	ID       int64  `gorm:"column:account_id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username;size:255;uniqueIndex"`
	Password string `gorm:"column:password;size:255"`
}

func (gormAccount) TableName() string { return "account" }

type gormMessage struct {
	ID       int64  `gorm:"column:message_id;primaryKey;autoIncrement"`
	Text     string `gorm:"column:message_text;size:255"`
	PostedBy int64  `gorm:"column:posted_by;index"`
}

func (gormMessage) TableName() string { return "message" }

// OpenSQLite opens (or creates) the database file and migrates the schema.
// TranslateError lets the unique index on username surface as
// gorm.ErrDuplicatedKey across drivers.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&gormAccount{}, &gormMessage{}); err != nil {
		return nil, err
	}

	return db, nil
}

type gormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

func (r *gormAccountRepository) Store(acc *Account) (*Account, error) {
	rec := gormAccount{Username: acc.Username, Password: acc.Password}
	if err := r.db.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrExistingUsername
		}
		return nil, err
	}
	return &Account{ID: rec.ID, Username: rec.Username, Password: rec.Password}, nil
}

func (r *gormAccountRepository) FindByUsername(username string) (*Account, error) {
	var rec gormAccount
	err := r.db.Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Account{ID: rec.ID, Username: rec.Username, Password: rec.Password}, nil
}

func (r *gormAccountRepository) FindByID(id int64) (*Account, error) {
	var rec gormAccount
	err := r.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Account{ID: rec.ID, Username: rec.Username, Password: rec.Password}, nil
}

func (r *gormAccountRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&gormAccount{}).Where("account_id = ?", id).Count(&count).Error
	return count > 0, err
}

type gormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Store(m *Message) (*Message, error) {
	rec := gormMessage{Text: m.Text, PostedBy: m.PostedBy}
	if err := r.db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &Message{ID: rec.ID, Text: rec.Text, PostedBy: rec.PostedBy}, nil
}

func (r *gormMessageRepository) FindByID(id int64) (*Message, error) {
	var rec gormMessage
	err := r.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Message{ID: rec.ID, Text: rec.Text, PostedBy: rec.PostedBy}, nil
}

func (r *gormMessageRepository) FindByPostedBy(accountID int64) ([]Message, error) {
	var recs []gormMessage
	err := r.db.Where("posted_by = ?", accountID).Order("message_id").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return messagesFromRecords(recs), nil
}

func (r *gormMessageRepository) FindAll() ([]Message, error) {
	var recs []gormMessage
	err := r.db.Order("message_id").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return messagesFromRecords(recs), nil
}

// UpdateText is a single UPDATE statement; the rows-affected count is
// what the service reports to callers.
func (r *gormMessageRepository) UpdateText(id int64, text string) (int64, error) {
	tx := r.db.Model(&gormMessage{}).Where("message_id = ?", id).Update("message_text", text)
	return tx.RowsAffected, tx.Error
}

func (r *gormMessageRepository) Delete(id int64) error {
	return r.db.Delete(&gormMessage{}, id).Error
}

func messagesFromRecords(recs []gormMessage) []Message {
	msgs := []Message{}
	for _, rec := range recs {
		msgs = append(msgs, Message{ID: rec.ID, Text: rec.Text, PostedBy: rec.PostedBy})
	}
	return msgs
}
