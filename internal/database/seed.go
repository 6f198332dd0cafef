package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// defaultCategory describes one seeded category row.
type defaultCategory struct {
	id, name, description, color, icon string
}

// defaultSpamNumber describes one seeded spam registry row.
type defaultSpamNumber struct {
	phoneNumber, categoryID, description string
	reportsCount                         int
}

// The built-in category set. IDs are fixed slugs so client apps can rely
// on them; seeded rows are ownerless and is_custom=false.
var defaultCategories = []defaultCategory{
	{"commercial", "Démarchage Commercial", "Appels de vente et marketing", "#E91E63", "shopping-bag"},
	{"energy", "Énergie", "EDF, Engie, fournisseurs d'énergie", "#FFC107", "flash"},
	{"insurance", "Assurance", "Compagnies d'assurance", "#2196F3", "shield"},
	{"telecom", "Téléphonie", "Opérateurs télécom", "#9C27B0", "phone"},
	{"realestate", "Immobilier", "Agences immobilières", "#4CAF50", "home"},
	{"banking", "Banque/Finance", "Services bancaires et financiers", "#FF9800", "credit-card"},
	{"survey", "Sondage", "Enquêtes et sondages", "#00BCD4", "clipboard"},
	{"scam", "Arnaque", "Tentatives d'arnaque", "#F44336", "alert-triangle"},
	{"cpf", "CPF/Formation", "Compte Personnel de Formation", "#673AB7", "book"},
	{"renovation", "Rénovation", "Travaux et rénovation énergétique", "#795548", "tool"},
	{"other", "Autre", "Autres types de démarchage", "#607D8B", "more-horizontal"},
}

// Known French spam numbers and prefixes.
var defaultSpamNumbers = []defaultSpamNumber{
	{"+33162000000", "energy", "Démarchage isolation", 150},
	{"+33163000000", "energy", "Panneaux solaires", 120},
	{"+33164000000", "renovation", "Rénovation énergétique", 200},
	{"+33170000000", "commercial", "Centre d'appels commercial", 180},
	{"+33949000000", "cpf", "Arnaque CPF", 500},
	{"+33948000000", "cpf", "Formation CPF frauduleuse", 450},
	{"+33970000000", "insurance", "Démarchage assurance", 90},
	{"+33971000000", "insurance", "Mutuelle santé", 85},
	{"+33980000000", "telecom", "Offre box internet", 70},
	{"+33981000000", "telecom", "Forfait mobile", 65},
	{"+33185000000", "banking", "Crédit consommation", 110},
	{"+33186000000", "banking", "Rachat de crédit", 95},
	{"+33187000000", "realestate", "Investissement immobilier", 80},
	{"+33891000000", "scam", "Numéro surtaxé suspect", 300},
	{"+33892000000", "scam", "Arnaque téléphonique", 280},
	{"+33899000000", "scam", "Numéro frauduleux", 350},
	{"+33176000000", "survey", "Sondage politique", 40},
	{"+33177000000", "survey", "Enquête satisfaction", 35},
	{"+33178000000", "commercial", "Vente à domicile", 60},
	{"+33179000000", "commercial", "Télémarketing", 55},
}

// Seed populates empty collections with the built-in dataset: the default
// categories, the known spam numbers, and the anonymous settings row.
// Each set is guarded by its own emptiness check so a partially seeded
// database converges on restart.
func Seed(db *sql.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedSpamNumbers(db); err != nil {
		return err
	}
	if err := seedAnonymousSettings(db); err != nil {
		return err
	}
	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("categories already seeded, skipping")
		return nil
	}

	for _, c := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (id, name, description, color, icon, is_custom)
			VALUES ($1, $2, $3, $4, $5, FALSE)
		`, c.id, c.name, c.description, c.color, c.icon)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.id, err)
		}
	}

	slog.Info("seeded default categories", "count", len(defaultCategories))
	return nil
}

func seedSpamNumbers(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM spam_numbers").Scan(&count); err != nil {
		return fmt.Errorf("seed check spam numbers: %w", err)
	}
	if count > 0 {
		slog.Info("spam numbers already seeded, skipping")
		return nil
	}

	for _, n := range defaultSpamNumbers {
		// Snapshot the category name at seed time, same as the report path.
		var catName string
		err := db.QueryRow(`SELECT name FROM categories WHERE id = $1`, n.categoryID).Scan(&catName)
		if err == sql.ErrNoRows {
			catName = "Inconnu"
		} else if err != nil {
			return fmt.Errorf("seed resolve category %s: %w", n.categoryID, err)
		}

		_, err = db.Exec(`
			INSERT INTO spam_numbers (id, phone_number, category_id, category_name, source, reports_count, description)
			VALUES ($1, $2, $3, $4, 'database', $5, $6)
		`, uuid.NewString(), n.phoneNumber, n.categoryID, catName, n.reportsCount, n.description)
		if err != nil {
			return fmt.Errorf("seed insert spam number %s: %w", n.phoneNumber, err)
		}
	}

	slog.Info("seeded default spam numbers", "count", len(defaultSpamNumbers))
	return nil
}

func seedAnonymousSettings(db *sql.DB) error {
	// ON CONFLICT keeps this idempotent across restarts.
	_, err := db.Exec(`
		INSERT INTO user_settings (id, block_unknown_numbers, notifications_enabled, auto_block_spam)
		VALUES ('anonymous', FALSE, TRUE, TRUE)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed anonymous settings: %w", err)
	}
	return nil
}
