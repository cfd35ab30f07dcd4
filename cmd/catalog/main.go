package main

import (
	addresshandler "marketplace/internal/addresses/handler"
	addressrepo "marketplace/internal/addresses/repository"
	addressservice "marketplace/internal/addresses/service"
	addressvalidator "marketplace/internal/addresses/validator"
	categoryhandler "marketplace/internal/categories/handler"
	categoryrepo "marketplace/internal/categories/repository"
	categoryservice "marketplace/internal/categories/service"
	categoryvalidator "marketplace/internal/categories/validator"
	deliveryhandler "marketplace/internal/deliveries/handler"
	deliveryrepo "marketplace/internal/deliveries/repository"
	deliveryservice "marketplace/internal/deliveries/service"
	permissionhandler "marketplace/internal/permissions/handler"
	permissionrepo "marketplace/internal/permissions/repository"
	permissionservice "marketplace/internal/permissions/service"
	permissionvalidator "marketplace/internal/permissions/validator"
	producthandler "marketplace/internal/products/handler"
	productrepo "marketplace/internal/products/repository"
	productservice "marketplace/internal/products/service"
	salehandler "marketplace/internal/productsales/handler"
	salerepo "marketplace/internal/productsales/repository"
	saleservice "marketplace/internal/productsales/service"
	statehandler "marketplace/internal/states/handler"
	staterepo "marketplace/internal/states/repository"
	stateservice "marketplace/internal/states/service"
	statevalidator "marketplace/internal/states/validator"
	"marketplace/pkg/app"
	"marketplace/pkg/config"
	"marketplace/pkg/events"
	"marketplace/pkg/kafka"
	kafka_config "marketplace/pkg/kafka/config"
	kafka_middleware "marketplace/pkg/kafka/middleware"
	"marketplace/pkg/metrics"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStore()
	cfg.SetRedis()

	m := metrics.New()
	publisher := newPublisher(cfg, m)

	states := staterepo.NewStateRepository(cfg)
	cities := staterepo.NewCityRepository(cfg)
	addresses := addressrepo.NewAddressRepository(cfg)
	deliveries := deliveryrepo.NewDeliveryRepository(cfg)
	categories := categoryrepo.NewCategoryRepository(cfg)
	products := productrepo.NewProductRepository(cfg)
	sales := salerepo.NewProductSaleRepository(cfg)
	permissions := permissionrepo.NewPermissionRepository(cfg)

	stateService := stateservice.NewStateService(
		states, cities, statevalidator.NewCityValidator(cfg.Log), publisher, m, cfg.Log,
	)
	addressService := addressservice.NewAddressService(
		addresses, states, cities, deliveries,
		addressvalidator.NewAddressValidator(cfg.Log), publisher, m, cfg.Log,
	)
	deliveryService := deliveryservice.NewDeliveryService(deliveries, cfg.Log)
	categoryService := categoryservice.NewCategoryService(
		categories, categoryvalidator.NewCategoryValidator(cfg.Log), publisher, m, cfg.Log,
	)
	productService := productservice.NewProductService(products, cfg.Log)
	saleService := saleservice.NewProductSaleService(sales, products, publisher, m, cfg.Log)
	permissionService := permissionservice.NewPermissionService(
		permissions, permissionvalidator.NewPermissionValidator(cfg.Log), publisher, m, cfg.Log,
	)

	application := app.NewApplication(cfg, m, publisher)
	application.SetApp(cfg.Client,
		statehandler.NewStateHandler(stateService, cfg.Log),
		addresshandler.NewAddressHandler(addressService, cfg.Log),
		deliveryhandler.NewDeliveryHandler(deliveryService, cfg.Log),
		categoryhandler.NewCategoryHandler(categoryService, cfg.Log),
		producthandler.NewProductHandler(productService, cfg.Log),
		salehandler.NewProductSaleHandler(saleService, cfg.Log),
		permissionhandler.NewPermissionHandler(permissionService, cfg.Log),
	)
	application.Run()
}

func newPublisher(cfg *config.Config, m *metrics.Metrics) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("KAFKA_BROKERS not set, domain events disabled")
		return events.Nop{}
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}

	cfg.Log.Info("Domain events published to Kafka", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, cfg.Log)
}
