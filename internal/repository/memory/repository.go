package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mailflow/internal/model"
)

type InMemoryEmailRepository struct {
	emails map[string]*model.EmailMessage
	mutex  sync.RWMutex
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		emails: make(map[string]*model.EmailMessage),
	}
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, email *model.EmailMessage) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRepository) FindByID(ctx context.Context, id string) (*model.EmailMessage, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	email, exists := r.emails[id]
	if !exists {
		return nil, errors.New("email not found")
	}
	return email, nil
}

func (r *InMemoryEmailRepository) FindByMessageID(ctx context.Context, tenantID, messageID string) (*model.EmailMessage, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, email := range r.emails {
		if email.TenantID == tenantID && email.MessageID == messageID {
			return email, nil
		}
	}
	return nil, errors.New("email not found")
}

func (r *InMemoryEmailRepository) FindByMailbox(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailMessage, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.EmailMessage
	for _, email := range r.emails {
		if email.TenantID == tenantID && email.MailboxID == mailboxID {
			result = append(result, email)
		}
	}
	return result, nil
}

func (r *InMemoryEmailRepository) FindByCategoryID(ctx context.Context, tenantID, categoryID string) ([]*model.EmailMessage, error) {
	// The in-memory store keeps no classification join; callers needing this
	// in tests resolve classifications directly.
	return nil, nil
}

func (r *InMemoryEmailRepository) Update(ctx context.Context, email *model.EmailMessage) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.emails[email.ID]
	if !exists {
		return errors.New("email not found")
	}
	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRepository) UpdateVipStatus(ctx context.Context, id string, isVip bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	email, exists := r.emails[id]
	if !exists {
		return errors.New("email not found")
	}
	email.IsVip = isVip
	return nil
}

func (r *InMemoryEmailRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.emails, id)
	return nil
}

// Rule repository implementation
type InMemoryRuleRepository struct {
	rules map[string]*model.ClassificationRule
	mutex sync.RWMutex
}

func NewInMemoryRuleRepository() *InMemoryRuleRepository {
	return &InMemoryRuleRepository{
		rules: make(map[string]*model.ClassificationRule),
	}
}

func (r *InMemoryRuleRepository) Create(ctx context.Context, rule *model.ClassificationRule) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.rules[rule.ID] = rule
	return nil
}

func (r *InMemoryRuleRepository) FindByID(ctx context.Context, id string) (*model.ClassificationRule, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rule, exists := r.rules[id]
	if !exists {
		return nil, errors.New("rule not found")
	}
	return rule, nil
}

func (r *InMemoryRuleRepository) FindActiveByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ClassificationRule
	for _, rule := range r.rules {
		if rule.TenantID == tenantID && rule.IsActive {
			result = append(result, rule)
		}
	}
	sortRules(result)
	return result, nil
}

func (r *InMemoryRuleRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ClassificationRule
	for _, rule := range r.rules {
		if rule.TenantID == tenantID {
			result = append(result, rule)
		}
	}
	sortRules(result)
	return result, nil
}

func (r *InMemoryRuleRepository) Update(ctx context.Context, rule *model.ClassificationRule) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.rules[rule.ID]
	if !exists {
		return errors.New("rule not found")
	}
	r.rules[rule.ID] = rule
	return nil
}

func (r *InMemoryRuleRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.rules, id)
	return nil
}

// sortRules orders by priority descending with id as a stable tiebreak,
// matching the postgres ORDER BY.
func sortRules(rules []*model.ClassificationRule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}

// Category repository implementation
type InMemoryCategoryRepository struct {
	categories map[string]*model.EmailCategory
	mutex      sync.RWMutex
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: make(map[string]*model.EmailCategory),
	}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, category *model.EmailCategory) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.categories[category.ID] = category
	return nil
}

func (r *InMemoryCategoryRepository) FindByID(ctx context.Context, id string) (*model.EmailCategory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, errors.New("category not found")
	}
	return category, nil
}

func (r *InMemoryCategoryRepository) FindAvailable(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailCategory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.EmailCategory
	for _, category := range r.categories {
		if category.TenantID != tenantID || !category.IsActive {
			continue
		}
		if category.MailboxID != nil && *category.MailboxID != mailboxID {
			continue
		}
		result = append(result, category)
	}
	sortCategories(result)
	return result, nil
}

func (r *InMemoryCategoryRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.EmailCategory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.EmailCategory
	for _, category := range r.categories {
		if category.TenantID == tenantID {
			result = append(result, category)
		}
	}
	sortCategories(result)
	return result, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, category *model.EmailCategory) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.categories[category.ID]
	if !exists {
		return errors.New("category not found")
	}
	r.categories[category.ID] = category
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.categories, id)
	return nil
}

func sortCategories(categories []*model.EmailCategory) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Priority != categories[j].Priority {
			return categories[i].Priority > categories[j].Priority
		}
		return categories[i].ID < categories[j].ID
	})
}

// Classification repository implementation
type InMemoryClassificationRepository struct {
	classifications map[string]*model.Classification
	mutex           sync.RWMutex

	// CreateFunc overrides Create when set, for failure injection in tests.
	CreateFunc func(ctx context.Context, classification *model.Classification) error
}

func NewInMemoryClassificationRepository() *InMemoryClassificationRepository {
	return &InMemoryClassificationRepository{
		classifications: make(map[string]*model.Classification),
	}
}

func (r *InMemoryClassificationRepository) Create(ctx context.Context, classification *model.Classification) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, classification)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.classifications[classification.ID] = classification
	return nil
}

func (r *InMemoryClassificationRepository) FindByEmailID(ctx context.Context, emailID string) ([]*model.Classification, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Classification
	for _, classification := range r.classifications {
		if classification.EmailID == emailID {
			result = append(result, classification)
		}
	}
	return result, nil
}

// VIP repository implementation
type InMemoryVipRepository struct {
	vips  map[string]*model.VipAddress
	mutex sync.RWMutex

	// FindActiveByAddressFunc overrides lookups when set, for failure
	// injection in tests.
	FindActiveByAddressFunc func(ctx context.Context, tenantID, emailAddress string) (*model.VipAddress, error)
}

func NewInMemoryVipRepository() *InMemoryVipRepository {
	return &InMemoryVipRepository{
		vips: make(map[string]*model.VipAddress),
	}
}

func (r *InMemoryVipRepository) Create(ctx context.Context, vip *model.VipAddress) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.vips[vip.ID] = vip
	return nil
}

func (r *InMemoryVipRepository) FindActiveByAddress(ctx context.Context, tenantID, emailAddress string) (*model.VipAddress, error) {
	if r.FindActiveByAddressFunc != nil {
		return r.FindActiveByAddressFunc(ctx, tenantID, emailAddress)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	needle := strings.ToLower(emailAddress)
	for _, vip := range r.vips {
		if vip.TenantID == tenantID && vip.IsActive && vip.EmailAddress == needle {
			return vip, nil
		}
	}
	return nil, nil
}

func (r *InMemoryVipRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.VipAddress, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.VipAddress
	for _, vip := range r.vips {
		if vip.TenantID == tenantID {
			result = append(result, vip)
		}
	}
	return result, nil
}

func (r *InMemoryVipRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.vips, id)
	return nil
}

// Mailbox repository implementation
type InMemoryMailboxRepository struct {
	mailboxes map[string]*model.Mailbox
	mutex     sync.RWMutex
}

func NewInMemoryMailboxRepository() *InMemoryMailboxRepository {
	return &InMemoryMailboxRepository{
		mailboxes: make(map[string]*model.Mailbox),
	}
}

func (r *InMemoryMailboxRepository) Create(ctx context.Context, mailbox *model.Mailbox) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.mailboxes[mailbox.ID] = mailbox
	return nil
}

func (r *InMemoryMailboxRepository) FindByID(ctx context.Context, id string) (*model.Mailbox, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	mailbox, exists := r.mailboxes[id]
	if !exists {
		return nil, errors.New("mailbox not found")
	}
	return mailbox, nil
}

func (r *InMemoryMailboxRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.Mailbox, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Mailbox
	for _, mailbox := range r.mailboxes {
		if mailbox.TenantID == tenantID {
			result = append(result, mailbox)
		}
	}
	return result, nil
}
