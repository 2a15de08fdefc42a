// Package mocks holds gomock mocks of the ofxconnect collaborator interfaces.
package mocks

//go:generate mockgen -destination=mock_dispatcher.go -package=mocks github.com/rockstardevs/ofxconnect Dispatcher
//go:generate mockgen -destination=mock_decoder.go -package=mocks github.com/rockstardevs/ofxconnect Decoder
