package service

import (
	"context"
	"testing"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestCreateChildAlertList(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)

	alert, err := svc.person.CreateChildAlertList(context.Background(), "1 Apple St")
	require.NoError(t, err)
	require.Len(t, alert.ChildList, 1)
	require.Equal(t, "Tom", alert.ChildList[0].FirstName)
	require.Equal(t, int64(10), alert.ChildList[0].Age)
	require.Len(t, alert.OtherMembersList, 1)
	require.Equal(t, "Anna", alert.OtherMembersList[0].FirstName)
}

// 有人居住但没有儿童：合法结果，childList 为空
func TestCreateChildAlertList_NoChildren(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)

	alert, err := svc.person.CreateChildAlertList(context.Background(), "2 Beach Rd")
	require.NoError(t, err)
	require.Empty(t, alert.ChildList)
	require.Len(t, alert.OtherMembersList, 1)
}

func TestCreateChildAlertList_UnknownAddress(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)

	_, err := svc.person.CreateChildAlertList(context.Background(), "99 Nowhere Ln")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPersonsByLastName(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)
	ctx := context.Background()

	out, err := svc.person.GetPersonsByLastName(ctx, "Little")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Little", out[0].LastName)
	require.Equal(t, "tom@email.com", out[0].Mail)
	require.Equal(t, int64(10), out[0].Age)
	require.Equal(t, []string{"peanut"}, out[0].MedicalRecord.Allergies)
	require.Equal(t, []string{"aznol:350mg"}, out[1].MedicalRecord.Medicine)

	_, err = svc.person.GetPersonsByLastName(ctx, "Nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPersonsEmails(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)
	ctx := context.Background()

	// 不去重，全部邮箱
	emails, err := svc.person.GetPersonsEmails(ctx, "Culver")
	require.NoError(t, err)
	require.Equal(t, []string{"tom@email.com", "anna@email.com", "bob@email.com"}, emails)

	_, err = svc.person.GetPersonsEmails(ctx, "Paris")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersonService_CRUD(t *testing.T) {
	svc := newServicesForTest(t, townDocForTest)
	ctx := context.Background()

	_, err := svc.person.CreatePerson(ctx, domain.Person{
		FirstName: "Eve", LastName: "Stone", Address: "2 Beach Rd",
		City: "Culver", Zip: "97451", Phone: "841-874-0003", Email: "eve@email.com",
	})
	require.NoError(t, err)

	person, err := svc.person.GetOnePerson(ctx, "Eve", "Stone")
	require.NoError(t, err)
	require.Equal(t, "2 Beach Rd", person.Address)

	_, err = svc.person.UpdatePerson(ctx, domain.Person{
		FirstName: "Eve", LastName: "Stone", Address: "5 Elm St",
		City: "Culver", Zip: "97451", Phone: "841-874-0003", Email: "eve@email.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.person.DeleteOnePerson(ctx, "Eve", "Stone"))
	_, err = svc.person.GetOnePerson(ctx, "Eve", "Stone")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
