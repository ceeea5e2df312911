package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quanlykho/kho_backend/config"
	"github.com/quanlykho/kho_backend/utils"
)

const restoreLockKey = "lock:backup-restore"

// restoreMu serializes restores within this process when Redis is absent.
var restoreMu sync.Mutex

// ExportBackup streams the full snapshot as a JSON download. When a GCS
// bucket is configured the same document is archived there, best-effort.
func (h *Handler) ExportBackup(c *gin.Context) {
	data, err := h.Ledger.ExportData(c.Request.Context())
	if err != nil {
		h.writeError(c, "ExportBackup", err)
		return
	}

	if utils.IsGCSConfigured() {
		body, marshalErr := json.Marshal(data)
		if marshalErr == nil {
			objectName := "backups/kho-" + time.Now().UTC().Format("20060102-150405") + ".json"
			if uploadErr := utils.UploadBackupToGCS(c.Request.Context(), objectName, body); uploadErr != nil {
				config.LogError(h.Logger, "handlers", "ExportBackup", "gcs upload", objectName, uploadErr)
			}
		}
	}

	c.Header("Content-Disposition", "attachment; filename=backup.json")
	c.JSON(http.StatusOK, data)
}

// ImportBackup replaces collections from an uploaded backup document. Two
// concurrent restores interleaving their collection writes would shred the
// data, so restores are serialized: through Redis when available, otherwise
// per-process.
func (h *Handler) ImportBackup(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if locker := config.GetRedisLock(); locker != nil {
		lock, lockErr := locker.Obtain(c.Request.Context(), restoreLockKey, 60*time.Second, nil)
		if lockErr == redislock.ErrNotObtained {
			c.JSON(http.StatusConflict, gin.H{"error": "another restore is in progress"})
			return
		}
		if lockErr != nil {
			h.Logger.WithFields(logrus.Fields{
				"module":   "handlers",
				"funcName": "ImportBackup",
			}).Warn("error obtaining redis lock; proceeding with local lock: " + lockErr.Error())
		} else {
			defer func() {
				if releaseErr := lock.Release(c.Request.Context()); releaseErr != nil {
					h.Logger.WithFields(logrus.Fields{
						"module":   "handlers",
						"funcName": "ImportBackup",
					}).Warn("failed to release redis lock: " + releaseErr.Error())
				}
			}()
		}
	}
	restoreMu.Lock()
	defer restoreMu.Unlock()

	if err := h.Ledger.ImportData(c.Request.Context(), body); err != nil {
		h.writeError(c, "ImportBackup", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true})
}
