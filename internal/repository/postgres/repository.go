package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mailflow/internal/model"

	_ "github.com/lib/pq"
)

type PostgresEmailRepository struct {
	db *sql.DB
}

func NewPostgresEmailRepository(db *sql.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

const emailColumns = `id, tenant_id, mailbox_id, message_id, sender_email, sender_name, subject, body_content, body_preview, importance, received_at, is_vip, processing_status, created_at, updated_at`

func scanEmail(row interface{ Scan(...interface{}) error }) (*model.EmailMessage, error) {
	email := &model.EmailMessage{}
	err := row.Scan(
		&email.ID, &email.TenantID, &email.MailboxID, &email.MessageID,
		&email.SenderEmail, &email.SenderName, &email.Subject,
		&email.BodyContent, &email.BodyPreview, &email.Importance,
		&email.ReceivedAt, &email.IsVip, &email.ProcessingStatus,
		&email.CreatedAt, &email.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) Create(ctx context.Context, email *model.EmailMessage) error {
	query := `
		INSERT INTO emails (` + emailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (tenant_id, message_id) DO UPDATE SET
			sender_email = EXCLUDED.sender_email,
			sender_name = EXCLUDED.sender_name,
			subject = EXCLUDED.subject,
			body_content = EXCLUDED.body_content,
			body_preview = EXCLUDED.body_preview,
			importance = EXCLUDED.importance,
			received_at = EXCLUDED.received_at,
			processing_status = EXCLUDED.processing_status,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		email.ID, email.TenantID, email.MailboxID, email.MessageID,
		email.SenderEmail, email.SenderName, email.Subject,
		email.BodyContent, email.BodyPreview, email.Importance,
		email.ReceivedAt, email.IsVip, email.ProcessingStatus,
		email.CreatedAt, email.UpdatedAt)
	return err
}

func (r *PostgresEmailRepository) FindByID(ctx context.Context, id string) (*model.EmailMessage, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`
	email, err := scanEmail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email not found")
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindByMessageID(ctx context.Context, tenantID, messageID string) (*model.EmailMessage, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE tenant_id = $1 AND message_id = $2`
	email, err := scanEmail(r.db.QueryRowContext(ctx, query, tenantID, messageID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email not found")
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindByMailbox(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailMessage, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE tenant_id = $1 AND mailbox_id = $2 ORDER BY received_at DESC`
	return r.queryEmails(ctx, query, tenantID, mailboxID)
}

func (r *PostgresEmailRepository) FindByCategoryID(ctx context.Context, tenantID, categoryID string) ([]*model.EmailMessage, error) {
	query := `
		SELECT ` + emailColumns + ` FROM emails
		WHERE tenant_id = $1 AND id IN (
			SELECT email_id FROM classifications WHERE tenant_id = $1 AND category_id = $2
		)
		ORDER BY received_at DESC`
	return r.queryEmails(ctx, query, tenantID, categoryID)
}

func (r *PostgresEmailRepository) queryEmails(ctx context.Context, query string, args ...interface{}) ([]*model.EmailMessage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*model.EmailMessage
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *PostgresEmailRepository) Update(ctx context.Context, email *model.EmailMessage) error {
	query := `
		UPDATE emails SET sender_email=$1, sender_name=$2, subject=$3, body_content=$4,
		body_preview=$5, importance=$6, is_vip=$7, processing_status=$8, updated_at=NOW()
		WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		email.SenderEmail, email.SenderName, email.Subject, email.BodyContent,
		email.BodyPreview, email.Importance, email.IsVip, email.ProcessingStatus,
		email.ID)
	return err
}

func (r *PostgresEmailRepository) UpdateVipStatus(ctx context.Context, id string, isVip bool) error {
	query := `UPDATE emails SET is_vip=$1, updated_at=NOW() WHERE id=$2`
	result, err := r.db.ExecContext(ctx, query, isVip, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("email not found")
	}
	return nil
}

func (r *PostgresEmailRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM emails WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres Rule repository implementation
type PostgresRuleRepository struct {
	db *sql.DB
}

func NewPostgresRuleRepository(db *sql.DB) *PostgresRuleRepository {
	return &PostgresRuleRepository{db: db}
}

const ruleColumns = `id, tenant_id, category_id, rule_type, rule_value, priority, is_active, created_at, updated_at`

func scanRule(row interface{ Scan(...interface{}) error }) (*model.ClassificationRule, error) {
	rule := &model.ClassificationRule{}
	err := row.Scan(
		&rule.ID, &rule.TenantID, &rule.CategoryID, &rule.RuleType,
		&rule.RuleValue, &rule.Priority, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *PostgresRuleRepository) Create(ctx context.Context, rule *model.ClassificationRule) error {
	query := `
		INSERT INTO classification_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.TenantID, rule.CategoryID, rule.RuleType,
		rule.RuleValue, rule.Priority, rule.IsActive,
		rule.CreatedAt, rule.UpdatedAt)
	return err
}

func (r *PostgresRuleRepository) FindByID(ctx context.Context, id string) (*model.ClassificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM classification_rules WHERE id = $1`
	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("rule not found")
		}
		return nil, err
	}
	return rule, nil
}

func (r *PostgresRuleRepository) FindActiveByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error) {
	query := `
		SELECT ` + ruleColumns + ` FROM classification_rules
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY priority DESC, id ASC`
	return r.queryRules(ctx, query, tenantID)
}

func (r *PostgresRuleRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error) {
	query := `
		SELECT ` + ruleColumns + ` FROM classification_rules
		WHERE tenant_id = $1
		ORDER BY priority DESC, id ASC`
	return r.queryRules(ctx, query, tenantID)
}

func (r *PostgresRuleRepository) queryRules(ctx context.Context, query string, args ...interface{}) ([]*model.ClassificationRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*model.ClassificationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *PostgresRuleRepository) Update(ctx context.Context, rule *model.ClassificationRule) error {
	query := `
		UPDATE classification_rules SET category_id=$1, rule_type=$2, rule_value=$3,
		priority=$4, is_active=$5, updated_at=NOW() WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		rule.CategoryID, rule.RuleType, rule.RuleValue,
		rule.Priority, rule.IsActive, rule.ID)
	return err
}

func (r *PostgresRuleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM classification_rules WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres Category repository implementation
type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, tenant_id, mailbox_id, name, description, priority, is_active, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (*model.EmailCategory, error) {
	category := &model.EmailCategory{}
	err := row.Scan(
		&category.ID, &category.TenantID, &category.MailboxID,
		&category.Name, &category.Description, &category.Priority,
		&category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *model.EmailCategory) error {
	query := `
		INSERT INTO email_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.TenantID, category.MailboxID,
		category.Name, category.Description, category.Priority,
		category.IsActive, category.CreatedAt, category.UpdatedAt)
	return err
}

func (r *PostgresCategoryRepository) FindByID(ctx context.Context, id string) (*model.EmailCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM email_categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}
	return category, nil
}

func (r *PostgresCategoryRepository) FindAvailable(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailCategory, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM email_categories
		WHERE tenant_id = $1 AND is_active = TRUE AND (mailbox_id = $2 OR mailbox_id IS NULL)
		ORDER BY priority DESC, id ASC`
	return r.queryCategories(ctx, query, tenantID, mailboxID)
}

func (r *PostgresCategoryRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.EmailCategory, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM email_categories
		WHERE tenant_id = $1
		ORDER BY priority DESC, id ASC`
	return r.queryCategories(ctx, query, tenantID)
}

func (r *PostgresCategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*model.EmailCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.EmailCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *model.EmailCategory) error {
	query := `
		UPDATE email_categories SET mailbox_id=$1, name=$2, description=$3,
		priority=$4, is_active=$5, updated_at=NOW() WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		category.MailboxID, category.Name, category.Description,
		category.Priority, category.IsActive, category.ID)
	return err
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM email_categories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres Classification repository implementation. Insert-only by design;
// there is no update path for classification records.
type PostgresClassificationRepository struct {
	db *sql.DB
}

func NewPostgresClassificationRepository(db *sql.DB) *PostgresClassificationRepository {
	return &PostgresClassificationRepository{db: db}
}

func (r *PostgresClassificationRepository) Create(ctx context.Context, classification *model.Classification) error {
	query := `
		INSERT INTO classifications (id, tenant_id, mailbox_id, email_id, category_id,
			confidence_score, classification_method, rule_id, sender_email, subject, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		classification.ID, classification.TenantID, classification.MailboxID,
		classification.EmailID, classification.CategoryID,
		classification.ConfidenceScore, classification.Method, classification.RuleID,
		classification.Metadata.SenderEmail, classification.Metadata.Subject,
		classification.Metadata.ProcessedAt, classification.CreatedAt)
	return err
}

func (r *PostgresClassificationRepository) FindByEmailID(ctx context.Context, emailID string) ([]*model.Classification, error) {
	query := `
		SELECT id, tenant_id, mailbox_id, email_id, category_id, confidence_score,
			classification_method, rule_id, sender_email, subject, processed_at, created_at
		FROM classifications WHERE email_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, emailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classifications []*model.Classification
	for rows.Next() {
		classification := &model.Classification{}
		err := rows.Scan(
			&classification.ID, &classification.TenantID, &classification.MailboxID,
			&classification.EmailID, &classification.CategoryID,
			&classification.ConfidenceScore, &classification.Method, &classification.RuleID,
			&classification.Metadata.SenderEmail, &classification.Metadata.Subject,
			&classification.Metadata.ProcessedAt, &classification.CreatedAt)
		if err != nil {
			return nil, err
		}
		classifications = append(classifications, classification)
	}
	return classifications, rows.Err()
}

// Postgres VIP repository implementation
type PostgresVipRepository struct {
	db *sql.DB
}

func NewPostgresVipRepository(db *sql.DB) *PostgresVipRepository {
	return &PostgresVipRepository{db: db}
}

const vipColumns = `id, tenant_id, email_address, label, is_active, created_at, updated_at`

func scanVip(row interface{ Scan(...interface{}) error }) (*model.VipAddress, error) {
	vip := &model.VipAddress{}
	err := row.Scan(
		&vip.ID, &vip.TenantID, &vip.EmailAddress, &vip.Label,
		&vip.IsActive, &vip.CreatedAt, &vip.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vip, nil
}

func (r *PostgresVipRepository) Create(ctx context.Context, vip *model.VipAddress) error {
	query := `
		INSERT INTO vip_addresses (` + vipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, email_address) DO UPDATE SET
			label = EXCLUDED.label,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		vip.ID, vip.TenantID, vip.EmailAddress, vip.Label,
		vip.IsActive, vip.CreatedAt, vip.UpdatedAt)
	return err
}

func (r *PostgresVipRepository) FindActiveByAddress(ctx context.Context, tenantID, emailAddress string) (*model.VipAddress, error) {
	query := `
		SELECT ` + vipColumns + ` FROM vip_addresses
		WHERE tenant_id = $1 AND email_address = $2 AND is_active = TRUE`
	vip, err := scanVip(r.db.QueryRowContext(ctx, query, tenantID, emailAddress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return vip, nil
}

func (r *PostgresVipRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.VipAddress, error) {
	query := `SELECT ` + vipColumns + ` FROM vip_addresses WHERE tenant_id = $1 ORDER BY email_address ASC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vips []*model.VipAddress
	for rows.Next() {
		vip, err := scanVip(rows)
		if err != nil {
			return nil, err
		}
		vips = append(vips, vip)
	}
	return vips, rows.Err()
}

func (r *PostgresVipRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vip_addresses WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres Mailbox repository implementation
type PostgresMailboxRepository struct {
	db *sql.DB
}

func NewPostgresMailboxRepository(db *sql.DB) *PostgresMailboxRepository {
	return &PostgresMailboxRepository{db: db}
}

const mailboxColumns = `id, tenant_id, email_address, display_name, provider, is_active, created_at, updated_at`

func scanMailbox(row interface{ Scan(...interface{}) error }) (*model.Mailbox, error) {
	mailbox := &model.Mailbox{}
	err := row.Scan(
		&mailbox.ID, &mailbox.TenantID, &mailbox.EmailAddress, &mailbox.DisplayName,
		&mailbox.Provider, &mailbox.IsActive, &mailbox.CreatedAt, &mailbox.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return mailbox, nil
}

func (r *PostgresMailboxRepository) Create(ctx context.Context, mailbox *model.Mailbox) error {
	query := `
		INSERT INTO mailboxes (` + mailboxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		mailbox.ID, mailbox.TenantID, mailbox.EmailAddress, mailbox.DisplayName,
		mailbox.Provider, mailbox.IsActive, mailbox.CreatedAt, mailbox.UpdatedAt)
	return err
}

func (r *PostgresMailboxRepository) FindByID(ctx context.Context, id string) (*model.Mailbox, error) {
	query := `SELECT ` + mailboxColumns + ` FROM mailboxes WHERE id = $1`
	mailbox, err := scanMailbox(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("mailbox not found")
		}
		return nil, err
	}
	return mailbox, nil
}

func (r *PostgresMailboxRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.Mailbox, error) {
	query := `SELECT ` + mailboxColumns + ` FROM mailboxes WHERE tenant_id = $1 ORDER BY email_address ASC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mailboxes []*model.Mailbox
	for rows.Next() {
		mailbox, err := scanMailbox(rows)
		if err != nil {
			return nil, err
		}
		mailboxes = append(mailboxes, mailbox)
	}
	return mailboxes, rows.Err()
}

// InitializeDatabase creates the necessary tables
func InitializeDatabase(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS mailboxes (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			email_address VARCHAR(255) NOT NULL,
			display_name VARCHAR(255),
			provider VARCHAR(64) NOT NULL DEFAULT 'graph',
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS emails (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			mailbox_id VARCHAR(255) NOT NULL,
			message_id VARCHAR(512) NOT NULL,
			sender_email TEXT NOT NULL,
			sender_name TEXT,
			subject TEXT,
			body_content TEXT,
			body_preview TEXT,
			importance VARCHAR(32),
			received_at TIMESTAMP NOT NULL,
			is_vip BOOLEAN DEFAULT FALSE,
			processing_status VARCHAR(32) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (tenant_id, message_id)
		)`,
		`CREATE TABLE IF NOT EXISTS email_categories (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			mailbox_id VARCHAR(255),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			priority INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS classification_rules (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			category_id VARCHAR(255) NOT NULL,
			rule_type VARCHAR(32) NOT NULL,
			rule_value TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS classifications (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			mailbox_id VARCHAR(255) NOT NULL,
			email_id VARCHAR(255) NOT NULL,
			category_id VARCHAR(255) NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			classification_method VARCHAR(32) NOT NULL,
			rule_id VARCHAR(255),
			sender_email TEXT,
			subject TEXT,
			processed_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vip_addresses (
			id VARCHAR(255) PRIMARY KEY,
			tenant_id VARCHAR(255) NOT NULL,
			email_address VARCHAR(255) NOT NULL,
			label VARCHAR(255),
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (tenant_id, email_address)
		)`,
	}

	for _, table := range tables {
		_, err := db.Exec(table)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
