package model

import "gorm.io/gorm"

// tagNameBinaryCollation MySQL 默认排序规则忽略重音（cafe = café），
// 标签名已在应用层统一为小写，唯一索引按字节比较才与之一致
const tagNameBinaryCollation = "ALTER TABLE tags MODIFY name varchar(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// AutoMigrate 同步 posts / tags / post_tags 表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&Post{}, &Tag{}, &PostTag{}); err != nil {
		return err
	}
	stmt := tagNameCollationSQL(db.Dialector.Name())
	if stmt == "" {
		return nil
	}

	var collation string
	err := db.Raw("SELECT COALESCE(COLLATION_NAME, '') FROM information_schema.COLUMNS " +
		"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'tags' AND COLUMN_NAME = 'name'").
		Scan(&collation).Error
	if err != nil {
		return err
	}
	if collation == "utf8mb4_bin" {
		return nil
	}
	return db.Exec(stmt).Error
}

// tagNameCollationSQL SQLite 与 Postgres 默认按字节比较，无需调整
func tagNameCollationSQL(dialect string) string {
	if dialect == "mysql" {
		return tagNameBinaryCollation
	}
	return ""
}
