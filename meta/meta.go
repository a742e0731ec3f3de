package meta

import (
	"strconv"

	"github.com/jsphweid/miditab/constants"
	"github.com/jsphweid/miditab/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// dynamo caps BatchGetItem key counts
const batchSize = 10

// GetMidiMetadatas looks up artist/release/title metadata by midi file name.
// File names without a metadata item are simply absent from the result; an
// unreachable endpoint is a configuration error and panics.
func GetMidiMetadatas(filenames []string) map[string]model.MidiMetadata {
	res := make(map[string]model.MidiMetadata)
	for start := 0; start < len(filenames); start += batchSize {
		end := start + batchSize
		if end > len(filenames) {
			end = len(filenames)
		}
		for k, v := range getBatch(filenames[start:end]) {
			res[k] = v
		}
	}
	return res
}

func getBatch(filenames []string) map[string]model.MidiMetadata {
	res := make(map[string]model.MidiMetadata)

	if len(filenames) == 0 {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetMetadataEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	table := constants.GetMetadataTable()
	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[table] {
		var s model.MidiMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Artist"] != nil && v["Artist"].S != nil {
			s.Artist = *v["Artist"].S
		}
		if v["Release"] != nil && v["Release"].S != nil {
			s.Release = *v["Release"].S
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		res[*v["PK"].S] = s
	}

	return res
}
