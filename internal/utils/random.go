package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/filial96/escala-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Ana", "Bruno", "Camila", "Daniel", "Eduarda", "Felipe", "Gabriela", "Henrique",
	"Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio", "Patrícia", "Rafael",
	"Sofia", "Thiago", "Vanessa", "William",
}

var commonSurnames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira",
	"Lima", "Gomes", "Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes",
	"Soares", "Fernandes", "Vieira", "Barbosa",
}

func GenerateRandomFullName() string {
	return commonFirstNames[rand.Intn(len(commonFirstNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var roles = []domain.Role{
	domain.RoleConsultorMoveis,
	domain.RoleConsultorModa,
	domain.RoleCrediarista,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

// acentos comuns nos nomes da equipe; o username fica só com ASCII minúsculo
var accentReplacer = strings.NewReplacer(
	"á", "a", "â", "a", "ã", "a", "à", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		username += accentReplacer.Replace(part)
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
