package jobs

import (
	"log"
	"os"

	"github.com/wanjiku2684/course_academy/database"
	"github.com/wanjiku2684/course_academy/models"
)

// CheckCertificateArtifacts logs certificates whose PDF never rendered or
// whose file disappeared from storage. It only reports; recovery stays
// inline with the next download request.
func CheckCertificateArtifacts() {
	log.Println("Running job: CheckCertificateArtifacts...")

	var certificates []models.Certificate
	if err := database.DB.Find(&certificates).Error; err != nil {
		log.Printf("Error loading certificates for artifact check: %v", err)
		return
	}

	missing := 0
	for _, cert := range certificates {
		if cert.CertificateURL == nil {
			log.Printf("⚠️ Certificate %s has no rendered artifact", cert.ID)
			missing++
			continue
		}
		if _, err := os.Stat(*cert.CertificateURL); err != nil {
			log.Printf("⚠️ Certificate %s artifact missing from storage: %s", cert.ID, *cert.CertificateURL)
			missing++
		}
	}

	if missing == 0 {
		log.Println("All certificate artifacts accounted for.")
		return
	}
	log.Printf("Found %d certificate(s) with missing artifacts.", missing)
}
