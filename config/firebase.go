package config

import "os"

// FirebaseServiceAccountKeyPath points at the service account JSON used by the
// FCM client. Overridable for deployments that mount credentials elsewhere.
var FirebaseServiceAccountKeyPath = firebaseKeyPath()

func firebaseKeyPath() string {
	if p := os.Getenv("FIREBASE_CREDENTIALS_FILE"); p != "" {
		return p
	}
	return "./config/firebase-service-account.json"
}
