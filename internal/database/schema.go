package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds idempotent DDL for every table the API uses. UUIDs are stored
// as CHAR(36); list and object fields live in JSON columns.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id CHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		excerpt TEXT NOT NULL,
		content MEDIUMTEXT NOT NULL,
		category VARCHAR(64) NOT NULL,
		tags JSON NOT NULL,
		published_at VARCHAR(10) NOT NULL,
		read_time VARCHAR(32) NOT NULL,
		image TEXT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_blog_posts_published_at (published_at)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id CHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(64) NOT NULL,
		tags JSON NOT NULL,
		image TEXT NULL,
		date_label VARCHAR(32) NULL,
		github TEXT NULL,
		demo TEXT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_projects_created_at (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS about_profiles (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		title VARCHAR(255) NOT NULL,
		bio TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		skills JSON NOT NULL,
		social JSON NOT NULL,
		dog JSON NULL,
		profile_image TEXT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS status_checks (
		id CHAR(36) PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		timestamp DATETIME(6) NOT NULL,
		INDEX idx_status_checks_timestamp (timestamp)
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id CHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		avatar_url TEXT NULL,
		provider VARCHAR(32) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id CHAR(36) PRIMARY KEY,
		blog_post_id CHAR(36) NOT NULL,
		user_id CHAR(36) NOT NULL,
		parent_id CHAR(36) NULL,
		content TEXT NOT NULL,
		deleted_at DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_comments_blog_post_id (blog_post_id),
		CONSTRAINT fk_comments_post FOREIGN KEY (blog_post_id) REFERENCES blog_posts (id) ON DELETE CASCADE,
		CONSTRAINT fk_comments_user FOREIGN KEY (user_id) REFERENCES user_profiles (id) ON DELETE CASCADE
	)`,
}

// EnsureSchema creates any missing tables. Statements are idempotent so the
// call is safe on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
