package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	Port   int `json:"port"`
	Engine struct {
		BaseUrl string `json:"baseUrl"`
		ApiKey  string `json:"apiKey"`
	} `json:"engine"`
	DbPath         string   `json:"dbPath"`
	JwtSecret      string   `json:"jwtSecret"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("CARTEIRA_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("CARTEIRA_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	if secrets.Port == 0 {
		secrets.Port = 3009
	}
	if secrets.DbPath == "" {
		secrets.DbPath = "carteira.db"
	}

	return &secrets, nil
}

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

func StrPtr(s string) *string {
	return &s
}

func Int64Ptr(i int64) *int64 {
	return &i
}

func Int32Ptr(i int32) *int32 {
	return &i
}
