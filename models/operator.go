package models

import "time"

// Operator is an administrative account permitted to manage content
// and review reader submissions.
type Operator struct {
	Operator_ID int       `json:"id" goqu:"skipinsert"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	Email       string    `json:"email"`
	First_Name  string    `json:"first_name"`
	Last_Name   string    `json:"last_name"`
	Created_At  time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At  time.Time `json:"updated_at" goqu:"skipinsert"`
}

type OperatorSignup struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
