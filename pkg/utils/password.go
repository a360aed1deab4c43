package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 默认强度够用；注意 bcrypt 只取口令前 72 字节
const hashCost = bcrypt.DefaultCost

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
