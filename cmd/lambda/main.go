package main

import (
	"context"
	"log"

	"carteira/cmd"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

type lambdaHandler struct {
	adapter *ginadapter.GinLambda
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return m.adapter.ProxyWithContext(ctx, req)
}

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	handler := lambdaHandler{
		adapter: ginadapter.New(deps.ApiHandler.InitializeRouterEngine()),
	}
	lambda.Start(handler.Handler)
}
