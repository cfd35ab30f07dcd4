package model

type State struct {
	ID       int64  `json:"id" db:"id" bson:"_id"`
	Name     string `json:"name" db:"name" bson:"name"`
	Initials string `json:"initials" db:"initials" bson:"initials"`
}

type City struct {
	ID      int64  `json:"id" db:"id" bson:"_id"`
	Name    string `json:"name" db:"name" bson:"name" validate:"required,min=2,max=100"`
	StateID int64  `json:"state_id,omitempty" db:"state_id" bson:"state_id"`
	State   *State `json:"state,omitempty" db:"-" bson:"-"`
}
