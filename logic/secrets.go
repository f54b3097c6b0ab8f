package logic

import (
	"encoding/json"

	"github.com/grantlink/grantlink/database"
	"github.com/grantlink/grantlink/models"
)

// the secret store is a table of its own so request items and identities
// carry only a reference, never the material

// StorePamSecret - parks credential material under its ref
func StorePamSecret(secret *models.PamSecret) error {
	data, err := json.Marshal(secret)
	if err != nil {
		return err
	}
	return database.Insert(secret.Ref, string(data), database.PAM_SECRETS_TABLE_NAME)
}

// GetPamSecret - fetches credential material by ref
func GetPamSecret(ref string) (models.PamSecret, error) {
	var secret models.PamSecret
	record, err := database.FetchRecord(database.PAM_SECRETS_TABLE_NAME, ref)
	if err != nil {
		return secret, err
	}
	if err = json.Unmarshal([]byte(record), &secret); err != nil {
		return models.PamSecret{}, err
	}
	return secret, nil
}

// DeletePamSecret - drops credential material
func DeletePamSecret(ref string) error {
	return database.DeleteRecord(database.PAM_SECRETS_TABLE_NAME, ref)
}
