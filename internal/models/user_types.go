package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Register is a row of the 'register' table, the users managed from the admin panel.
// The password column is never selected for output.
type Register struct {
	ID           int64   `json:"id" db:"id"`
	FirstName    *string `json:"firstName" db:"firstName"`
	LastName     *string `json:"lastName" db:"lastName"`
	Email        *string `json:"email" db:"email"`
	Phone        *string `json:"phone" db:"phone"`
	ProfileImage *string `json:"profileImage" db:"profileImage"`
}

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
