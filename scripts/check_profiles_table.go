//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"schoolform-data/internal/config"
	"schoolform-data/internal/database"
)

// 快速检查 sink 数据库里 school_profiles 表的状态
// go run scripts/check_profiles_table.go
func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM school_profiles`).Scan(&count); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count school_profiles: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("school_profiles: %d rows\n", count)

	rows, err := db.Query(`
		SELECT school_id, school_name, region, submitted_at
		FROM school_profiles
		ORDER BY submitted_at DESC
		LIMIT 10`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query recent submissions: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	fmt.Println("\nMost recent submissions:")
	for rows.Next() {
		var id, name, region, submittedAt string
		if err := rows.Scan(&id, &name, &region, &submittedAt); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to scan row: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %-12s %-40s %-12s %s\n", id, name, region, submittedAt)
	}
}
