package main

import (
	"contacthub-backend/internal/config"
	"contacthub-backend/internal/database"
	"contacthub-backend/internal/database/models"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name       string `yaml:"name"`
	Slug       string `yaml:"slug"`
	OwnerEmail string `yaml:"owner_email"`
}

type UserData struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
}

type MembershipData struct {
	OrganizationSlug string `yaml:"organization_slug"`
	UserEmail        string `yaml:"user_email"`
	Role             string `yaml:"role"`
}

type NoteData struct {
	AuthorEmail string `yaml:"author_email"`
	Body        string `yaml:"body"`
}

type MetaData struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type ContactData struct {
	OrganizationSlug string     `yaml:"organization_slug"`
	FirstName        string     `yaml:"first_name"`
	LastName         string     `yaml:"last_name"`
	Email            string     `yaml:"email,omitempty"`
	Phone            string     `yaml:"phone,omitempty"`
	CreatedByEmail   string     `yaml:"created_by_email"`
	Notes            []NoteData `yaml:"notes,omitempty"`
	Meta             []MetaData `yaml:"meta,omitempty"`
}

// File structures
type OrganizationsFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type MembershipsFile struct {
	Memberships []MembershipData `yaml:"memberships"`
}

type ContactsFile struct {
	Contacts []ContactData `yaml:"contacts"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Configure database options to suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent, // Suppress all GORM logs including SQL queries and "record not found"
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	// Load all data from YAML files
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	organizations, err := loadOrganizations(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}

	memberships, err := loadMemberships(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load memberships: %w", err)
	}

	contacts, err := loadContacts(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	// Create users first; organizations need an owner
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	// Create organizations
	orgMap := make(map[string]*models.Organization)
	orgCreated := 0
	for _, orgData := range organizations {
		org, created, err := createOrganization(db, orgData, userMap)
		if err != nil {
			return fmt.Errorf("failed to create organization %s: %w", orgData.Name, err)
		}
		orgMap[orgData.Slug] = org
		if created {
			orgCreated++
		}
	}
	log.Printf("📋 Organizations: %d created, %d total", orgCreated, len(organizations))

	// Create memberships
	membershipCreated := 0
	for _, membershipData := range memberships {
		_, created, err := createMembership(db, membershipData, orgMap, userMap)
		if err != nil {
			return fmt.Errorf("failed to create membership %s/%s: %w",
				membershipData.OrganizationSlug, membershipData.UserEmail, err)
		}
		if created {
			membershipCreated++
		}
	}
	log.Printf("📋 Memberships: %d created, %d total", membershipCreated, len(memberships))

	// Create contacts with their notes and custom fields
	contactCreated := 0
	for _, contactData := range contacts {
		_, created, err := createContact(db, contactData, orgMap, userMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create contact %s %s: %v",
				contactData.FirstName, contactData.LastName, err)
			continue // Continue with other contacts
		}
		if created {
			contactCreated++
		}
	}
	log.Printf("📋 Contacts: %d created, %d total", contactCreated, len(contacts))

	return nil
}

func loadOrganizations(dataDir string) ([]OrganizationData, error) {
	var allOrgs []OrganizationData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "organizations") {
			var file OrganizationsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allOrgs = append(allOrgs, file.Organizations...)
		}
		return nil
	})

	return allOrgs, err
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "users") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func loadMemberships(dataDir string) ([]MembershipData, error) {
	var allMemberships []MembershipData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "memberships") {
			var file MembershipsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allMemberships = append(allMemberships, file.Memberships...)
		}
		return nil
	})

	return allMemberships, err
}

func loadContacts(dataDir string) ([]ContactData, error) {
	var allContacts []ContactData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "contacts") {
			var file ContactsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allContacts = append(allContacts, file.Contacts...)
		}
		return nil
	})

	return allContacts, err
}

func createUser(db *gorm.DB, userData UserData) (*models.User, bool, error) {
	var user models.User
	if err := db.Where("email = ?", userData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			user = models.User{
				Email:    userData.Email,
				FullName: userData.FullName,
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query user: %w", err)
		}
	}

	return &user, false, nil // created = false (existing)
}

func createOrganization(db *gorm.DB, orgData OrganizationData, userMap map[string]*models.User) (*models.Organization, bool, error) {
	owner, ok := userMap[orgData.OwnerEmail]
	if !ok {
		return nil, false, fmt.Errorf("owner %s not found", orgData.OwnerEmail)
	}

	var org models.Organization
	if err := db.Where("slug = ?", orgData.Slug).First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			org = models.Organization{
				Name:        orgData.Name,
				Slug:        orgData.Slug,
				OwnerUserID: owner.ID,
			}

			if err := db.Create(&org).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create organization: %w", err)
			}
			return &org, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query organization: %w", err)
		}
	}

	return &org, false, nil // created = false (existing)
}

func createMembership(db *gorm.DB, membershipData MembershipData, orgMap map[string]*models.Organization, userMap map[string]*models.User) (*models.Membership, bool, error) {
	org, ok := orgMap[membershipData.OrganizationSlug]
	if !ok {
		return nil, false, fmt.Errorf("organization %s not found", membershipData.OrganizationSlug)
	}
	user, ok := userMap[membershipData.UserEmail]
	if !ok {
		return nil, false, fmt.Errorf("user %s not found", membershipData.UserEmail)
	}

	role := models.MembershipRole(membershipData.Role)
	if role != models.MembershipRoleAdmin && role != models.MembershipRoleMember {
		return nil, false, fmt.Errorf("unknown role %q", membershipData.Role)
	}

	var membership models.Membership
	if err := db.Where("organization_id = ? AND user_id = ?", org.ID, user.ID).First(&membership).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			membership = models.Membership{
				OrganizationID: org.ID,
				UserID:         user.ID,
				Role:           role,
			}

			if err := db.Create(&membership).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create membership: %w", err)
			}
			return &membership, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query membership: %w", err)
		}
	}

	return &membership, false, nil // created = false (existing)
}

func createContact(db *gorm.DB, contactData ContactData, orgMap map[string]*models.Organization, userMap map[string]*models.User) (*models.Contact, bool, error) {
	org, ok := orgMap[contactData.OrganizationSlug]
	if !ok {
		return nil, false, fmt.Errorf("organization %s not found", contactData.OrganizationSlug)
	}
	creator, ok := userMap[contactData.CreatedByEmail]
	if !ok {
		return nil, false, fmt.Errorf("creator %s not found", contactData.CreatedByEmail)
	}

	var contact models.Contact
	err := db.Where("organization_id = ? AND first_name = ? AND last_name = ?",
		org.ID, contactData.FirstName, contactData.LastName).First(&contact).Error
	if err == nil {
		return &contact, false, nil // created = false (existing)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, fmt.Errorf("failed to query contact: %w", err)
	}

	contact = models.Contact{
		OrganizationID: org.ID,
		FirstName:      contactData.FirstName,
		LastName:       contactData.LastName,
		CreatedBy:      creator.ID,
		UpdatedBy:      creator.ID,
	}
	if contactData.Email != "" {
		email := strings.ToLower(strings.TrimSpace(contactData.Email))
		contact.Email = &email
	}
	if contactData.Phone != "" {
		phone := contactData.Phone
		contact.Phone = &phone
	}

	if err := db.Create(&contact).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create contact: %w", err)
	}

	for _, noteData := range contactData.Notes {
		author, ok := userMap[noteData.AuthorEmail]
		if !ok {
			return nil, false, fmt.Errorf("note author %s not found", noteData.AuthorEmail)
		}
		note := models.ContactNote{
			ContactID: contact.ID,
			UserID:    author.ID,
			Body:      noteData.Body,
		}
		if err := db.Create(&note).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create note: %w", err)
		}
	}

	if len(contactData.Meta) > models.MaxMetaPerContact {
		return nil, false, fmt.Errorf("contact has %d custom fields, limit is %d",
			len(contactData.Meta), models.MaxMetaPerContact)
	}
	for _, metaData := range contactData.Meta {
		meta := models.ContactMeta{
			ContactID: contact.ID,
			Key:       metaData.Key,
			Value:     metaData.Value,
		}
		if err := db.Create(&meta).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create custom field: %w", err)
		}
	}

	return &contact, true, nil // created = true
}
