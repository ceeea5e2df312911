package config

import (
	"log"
	"os"

	"github.com/quanlykho/kho_backend/store"
)

var activeStore store.Store

func GetStore() store.Store {
	return activeStore
}

// ConnectStore selects the store backend from the environment and sets the
// process-wide instance. STORE_BACKEND picks firebase, redis or local;
// unset, it follows what is configured (firebase url wins over redis, local
// is the last resort). Remote backends are wrapped in the local fallback
// when LOCAL_DATA_DIR is set so the shop keeps working through outages.
func ConnectStore() store.Store {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		switch {
		case os.Getenv("FIREBASE_DATABASE_URL") != "":
			backend = "firebase"
		case os.Getenv("REDIS_ADDRESS") != "":
			backend = "redis"
		default:
			backend = "local"
		}
	}

	var primary store.Store
	switch backend {
	case "firebase":
		fs, err := store.NewFirebaseStore(os.Getenv("FIREBASE_DATABASE_URL"))
		if err != nil {
			log.Fatalf("firebase store: %v", err)
		}
		primary = fs
	case "redis":
		if GetRedisDB() == nil {
			log.Fatalf("redis store selected but redis is not connected")
		}
		primary = store.NewRedisStore(GetRedisDB())
	case "local":
		ls, err := store.NewLocalStore(GetEnv("LOCAL_DATA_DIR", "./data"))
		if err != nil {
			log.Fatalf("local store: %v", err)
		}
		primary = ls
	default:
		log.Fatalf("unknown STORE_BACKEND %q", backend)
	}

	if backend != "local" {
		if dir := os.Getenv("LOCAL_DATA_DIR"); dir != "" {
			local, err := store.NewLocalStore(dir)
			if err != nil {
				log.Fatalf("local fallback store: %v", err)
			}
			primary = store.NewFallbackStore(primary, local, GetLogger())
		}
	}

	log.Printf("using %s store backend", backend)
	activeStore = primary
	return primary
}
