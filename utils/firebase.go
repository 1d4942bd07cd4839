package utils

import (
	"context"
	"log"

	"kietcollab/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMClient is the global Firebase Cloud Messaging client. It stays nil
// when FCM is disabled; callers must check before sending.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
func FirebaseInit() {
	if !config.AppConfig.FCMEnabled {
		log.Println("FCM disabled, skipping Firebase initialization")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FCMCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
