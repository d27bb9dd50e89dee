package database

import (
	"log"

	announcementModel "specsnexus_backend/internals/features/announcements/model"
	eventModel "specsnexus_backend/internals/features/events/model"
	clearanceModel "specsnexus_backend/internals/features/membership/clearances/model"
	qrcodeModel "specsnexus_backend/internals/features/membership/qrcodes/model"
	officerModel "specsnexus_backend/internals/features/officers/model"
	userModel "specsnexus_backend/internals/features/users/model"

	"specsnexus_backend/internals/configs"
)

// Migrate creates or updates the schema. Skipped unless DB_AUTO_MIGRATE
// is truthy so production deploys control their own migrations.
func Migrate() {
	if configs.GetEnv("DB_AUTO_MIGRATE", "false") != "true" {
		log.Println("[INFO] auto-migrate disabled, skipping")
		return
	}

	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&officerModel.OfficerModel{},
		&clearanceModel.ClearanceModel{},
		&qrcodeModel.QRCodeModel{},
		&eventModel.EventModel{},
		&announcementModel.AnnouncementModel{},
	)
	if err != nil {
		log.Fatalf("[ERROR] auto-migrate failed: %v", err)
	}
	log.Println("[INFO] auto-migrate complete")
}
