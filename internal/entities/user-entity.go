package entities

import "github.com/aarondl/null/v8"

type User struct {
	ID          uint64      `db:"id"`
	Username    string      `db:"username"`
	Password    string      `db:"password"`
	Role        string      `db:"role"`
	Email       null.String `db:"email"`
	FotoPath    null.String `db:"foto_path"`
	DataCriacao null.Time   `db:"data_criacao"`
}
