package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	UnavailableSlot struct {
		Date time.Time `bson:"date"`
		Time string    `bson:"time"`
	}

	HealthInfo struct {
		BMIAndBSA     string `bson:"bmiAndBsa,omitempty"`
		BloodPressure string `bson:"bloodPressure,omitempty"`
		Temperature   string `bson:"temperature,omitempty"`
	}

	User struct {
		ID              primitive.ObjectID  `bson:"_id,omitempty"`
		FullName        string              `bson:"fullName"`
		Email           string              `bson:"email"`
		Password        *string             `bson:"password,omitempty"`
		PhoneNumber     string              `bson:"phoneNumber,omitempty"`
		Avatar          string              `bson:"avatar"`
		Role            string              `bson:"role"`
		AuthType        string              `bson:"authType"`
		GoogleID        string              `bson:"googleId,omitempty"`
		FacebookID      string              `bson:"facebookId,omitempty"`
		Descriptions    string              `bson:"descriptions,omitempty"`
		Specialisation  string              `bson:"specialisation,omitempty"`
		Facility        *primitive.ObjectID `bson:"facility,omitempty"`
		UnavailableTime []UnavailableSlot   `bson:"unavailableTime,omitempty"`
		HealthInfo      *HealthInfo         `bson:"healthInfor,omitempty"`

		PasswordModified *time.Time `bson:"passwordModified,omitempty"`
		IsDelete         bool       `bson:"isDelete"`

		CreatedAt time.Time `bson:"createdAt"`
		UpdatedAt time.Time `bson:"updatedAt"`
	}
	Users []*User
)
